package exporter

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stockcli/pkg/contracts/domain"
)

func TestDigestRenderer_YardA(t *testing.T) {
	view := domain.ViewOf(summarize(t, yardA()))
	got := NewDigestRenderer(DefaultDigestOptions()).Render(view)

	want := strings.Join([]string{
		"📦 STOCK UPDATE",
		"",
		"Last update (mutation): 05-01-2025",
		"",
		"GLOBAL STOCK",
		"Count  : 3 pcs",
		"Volume : 6.50 m³",
		"",
		"================",
		"YARD-A",
		"Last mutation : 05-01-2025",
		"Total : 3 pcs | 6.50 m³",
		"",
		"  OAK  :     2 pcs |      3.50 m³",
		"  PINE :     1 pcs |      3.00 m³",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestDigestRenderer_Empty(t *testing.T) {
	got := NewDigestRenderer(DigestOptions{}).Render(domain.StockView{})
	assert.Equal(t, "📦 STOCK UPDATE\n\nNo data in stock table\n", got)
}

func TestDigestRenderer_CustomLabels(t *testing.T) {
	opts := DefaultDigestOptions()
	opts.Labels = Labels{
		Title:          "📦 UPDATE STOK",
		LastUpdate:     "Update terakhir (mutasi)",
		GlobalHeading:  "STOK GLOBAL",
		Count:          "Jumlah",
		Volume:         "Volume",
		LocationUpdate: "Terakhir mutasi",
		LocationTotal:  "Total",
		NoData:         "Tidak ada data",
		CountUnit:      "btg",
		VolumeUnit:     "m³",
	}

	got := NewDigestRenderer(opts).Render(domain.ViewOf(summarize(t, yardA())))
	assert.Contains(t, got, "Jumlah : 3 btg\n")
	assert.Contains(t, got, "Volume : 6.50 m³\n")
	assert.Contains(t, got, "Terakhir mutasi : 05-01-2025\n")
	assert.Contains(t, got, "Total : 3 btg | 6.50 m³\n")
}

func TestDigestRenderer_TruncatesLongTypes(t *testing.T) {
	b := domain.NewViewBuilder()
	b.Add("YARD", "MERANTI MERAH SUPER KERING", 1, decimal.RequireFromString("1"), domain.Date{})
	b.Add("YARD", "OAK", 1, decimal.RequireFromString("2"), domain.Date{})

	opts := DefaultDigestOptions()
	opts.MaxTypeWidth = 10
	got := NewDigestRenderer(opts).Render(b.View())

	assert.Contains(t, got, "  OAK        :     1 pcs |      2.00 m³\n")
	assert.Contains(t, got, "  MERANTI ME :     1 pcs |      1.00 m³\n")
	assert.Contains(t, got, "Last mutation : -\n")
	assert.Contains(t, got, "Last update (mutation): -\n")
}

func TestLocationOrder_Apply(t *testing.T) {
	locs := []domain.LocationView{{Location: "YARD-B"}, {Location: "BLOK"}, {Location: "ANNEX"}, {Location: "YARD-A"}}
	names := func(ls []domain.LocationView) []string {
		out := make([]string, len(ls))
		for i, l := range ls {
			out[i] = l.Location
		}
		return out
	}

	tests := []struct {
		name     string
		order    LocationOrder
		priority string
		want     []string
	}{
		{"alphabetical", LocationAlphabetical, "", []string{"ANNEX", "BLOK", "YARD-A", "YARD-B"}},
		{"alphabetical with priority", LocationAlphabetical, "YARD-A", []string{"YARD-A", "ANNEX", "BLOK", "YARD-B"}},
		{"first seen", LocationFirstSeen, "", []string{"YARD-B", "BLOK", "ANNEX", "YARD-A"}},
		{"first seen with priority", LocationFirstSeen, "BLOK", []string{"BLOK", "YARD-B", "ANNEX", "YARD-A"}},
		{"absent priority", LocationAlphabetical, "NOPE", []string{"ANNEX", "BLOK", "YARD-A", "YARD-B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.order.Apply(locs, tt.priority)))
		})
	}
	assert.Equal(t, "YARD-B", locs[0].Location, "input untouched")
}

func TestTypeOrder_Apply(t *testing.T) {
	d := decimal.RequireFromString
	types := []domain.TypeTotal{
		{Type: "PINE", Volume: d("3")},
		{Type: "BIRCH", Volume: d("3")},
		{Type: "OAK", Volume: d("3.5")},
		{Type: "ASH", Volume: d("0.1")},
	}
	names := func(ts []domain.TypeTotal) []string {
		out := make([]string, len(ts))
		for i, tt := range ts {
			out[i] = tt.Type
		}
		return out
	}

	assert.Equal(t, []string{"OAK", "BIRCH", "PINE", "ASH"}, names(TypeVolumeDesc.Apply(types)))
	assert.Equal(t, []string{"ASH", "BIRCH", "OAK", "PINE"}, names(TypeAlphabetical.Apply(types)))
}

func TestDigestRenderer_PriorityLocationFirst(t *testing.T) {
	rows := append(yardA(), stockRow("L-9", "TEAK", "1", "30", "03/01/2025", "BLOK"), stockRow("L-10", "TEAK", "1", "30", "03/01/2025", "ANNEX"))
	got := NewDigestRenderer(DefaultDigestOptions()).Render(domain.ViewOf(summarize(t, rows)))

	blok := strings.Index(got, "\nBLOK\n")
	annex := strings.Index(got, "\nANNEX\n")
	yard := strings.Index(got, "\nYARD-A\n")
	assert.True(t, blok >= 0 && blok < annex && annex < yard, got)
}
