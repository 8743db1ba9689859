package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_FirstSheet(t *testing.T) {
	path := writeTestXLSX(t, "visitors", [][]string{
		{"", "Country", "France"},
		{"Year", "Month", "Total"},
		{"2024", "Jan", "1,234"},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Year", "Month", "Total"}, rows[1])
	assert.Equal(t, []string{"2024", "Jan", "1,234"}, rows[2])
}

func TestReadXLSX_DropsTrailingEmptyCells(t *testing.T) {
	path := writeTestXLSX(t, "s", [][]string{{"a", "b", "", ""}})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestReadXLSX_SheetByName(t *testing.T) {
	path := writeTestXLSX(t, "data", [][]string{{"x"}})

	rows, err := ReadXLSX(path, XLSXOptions{SheetName: "data"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}}, rows)

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "nope" not found`)
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := writeTestXLSX(t, "data", [][]string{{"x"}})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "none.xlsx"), XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open")
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, IsXLSX("raw_data/Visitors.XLSX"))
	assert.False(t, IsXLSX("raw_data/Visitors.csv"))
}
