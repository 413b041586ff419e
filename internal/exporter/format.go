package exporter

import (
	"strconv"

	"github.com/shopspring/decimal"

	"stockcli/pkg/contracts/domain"
)

// formatVolume formats a volume with the fixed number of decimals the table
// publishes, rounding half away from zero.
func formatVolume(v decimal.Decimal) string {
	return v.StringFixed(domain.VolumePlaces)
}

// formatInt formats a count
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate formats a date as DD-MM-YYYY, empty when absent
func formatDate(d domain.Date) string {
	return d.Format(domain.ReportDateFormat)
}

// formatDigestDate formats a date for the digest, "-" when absent
func formatDigestDate(d domain.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(domain.ReportDateFormat)
}
