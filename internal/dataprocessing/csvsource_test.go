package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcli/pkg/contracts/domain"
)

func TestCSVSource(t *testing.T) {
	input := "\xEF\xBB\xBFno,id,type\n1,L-1,OAK\n2,,\n3,L-3,\"PINE, RED\"\n"

	tests := []struct {
		name           string
		minRow, maxRow int
		want           [][]string
	}{
		{name: "all rows", want: [][]string{{"no", "id", "type"}, {"1", "L-1", "OAK"}, {"2", "", ""}, {"3", "L-3", "PINE, RED"}}},
		{name: "skip header", minRow: 2, want: [][]string{{"1", "L-1", "OAK"}, {"2", "", ""}, {"3", "L-3", "PINE, RED"}}},
		{name: "bounded", minRow: 2, maxRow: 3, want: [][]string{{"1", "L-1", "OAK"}, {"2", "", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewCSVSource(strings.NewReader(input), tt.minRow, tt.maxRow)
			var got [][]string
			for src.Next() {
				var cells []string
				for _, c := range src.Row() {
					cells = append(cells, c.String())
				}
				got = append(got, cells)
			}
			require.NoError(t, src.Err())
			assert.Equal(t, tt.want, got)
			assert.NoError(t, src.Close())
		})
	}
}

func TestCSVSource_EmptyFieldsAreEmptyCells(t *testing.T) {
	src := NewCSVSource(strings.NewReader("a,,c\n"), 1, 0)
	require.True(t, src.Next())
	assert.Equal(t, domain.CellText, src.Row().At(0).Kind)
	assert.True(t, src.Row().At(1).IsEmpty())
}

func TestOpenCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	src, err := OpenCSV(path, 1, 0)
	require.NoError(t, err)
	require.True(t, src.Next())
	assert.NoError(t, src.Close())

	_, err = OpenCSV(filepath.Join(t.TempDir(), "missing.csv"), 1, 0)
	assert.Error(t, err)
}
