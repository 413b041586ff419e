package dataprocessing

import (
	"time"

	"stockcli/pkg/contracts/domain"
)

// ledgerRow lays cells out in the default B/H/M/R/S/T columns.
func ledgerRow(id, itemType, volume, sizeClass, date, location domain.Cell) domain.RawRow {
	row := make(domain.RawRow, 20)
	row[1] = id
	row[7] = itemType
	row[12] = volume
	row[17] = sizeClass
	row[18] = date
	row[19] = location
	return row
}

// textRow is ledgerRow for all-text cells.
func textRow(id, itemType, volume, sizeClass, date, location string) domain.RawRow {
	t := domain.TextCell
	return ledgerRow(t(id), t(itemType), t(volume), t(sizeClass), t(date), t(location))
}

func day(y int, m time.Month, d int) domain.Date { return domain.NewDate(y, m, d) }

// yardARows is the three-record example: two OAK logs in size class 20 and
// one PINE log in size class 25.
func yardARows() []domain.RawRow {
	return []domain.RawRow{
		textRow("L-001", "OAK", "1.5", "20", "2025-01-03", "YARD-A"),
		textRow("L-002", "OAK", "2,0", "20", "05/01/2025", "YARD-A"),
		textRow("L-003", "PINE", "3.0", "25", "02-01-2025", "YARD-A"),
	}
}
