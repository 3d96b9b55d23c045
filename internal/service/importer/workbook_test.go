package importer

import (
	"bytes"
	"io"
	"testing"

	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testMarkers = map[string]struct{}{
	"total":       {},
	"grand total": {},
	"overall":     {},
}

func buildWorkbook(t *testing.T, rows [][]any) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseWorkbook_ExactHeaders(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"07", "Alpha", 100, 80, 60, 5},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0].DistrictCode)
	assert.Equal(t, "Alpha", rows[0].DistrictName)
	assert.Equal(t, 100, rows[0].Target)
	assert.Equal(t, 80, rows[0].Booking)
	assert.Equal(t, 60, rows[0].Installed)
	assert.Equal(t, 5, rows[0].Rejected)
}

func TestParseWorkbook_YearPrefixedHeaders(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"District Code", "District Name", "2024-25_Target", "2024-25_Booking", "2024-25_Installed", "2024-25_Rejected"},
		{"1", "Alpha", 10, 20, 30, 40},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Target)
	assert.Equal(t, 40, rows[0].Rejected)
}

func TestParseWorkbook_YearTokenHeaders(t *testing.T) {
	// compact and expanded year tokens both resolve
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target 202425", "Booking 20242025", "Installed 202425", "Rejected 202425"},
		{"1", "Alpha", 1, 2, 3, 4},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Target)
	assert.Equal(t, 2, rows[0].Booking)
}

func TestParseWorkbook_MissingDistrictColumns(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Target", "Booking", "Installed", "Rejected"},
		{1, 2, 3, 4},
	})

	_, err := parseWorkbook(wb, "2024-25", testMarkers)
	assert.ErrorIs(t, err, constants.ErrInvalidFormat)
}

func TestParseWorkbook_MissingMetricColumn(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed"},
		{"1", "Alpha", 1, 2, 3},
	})

	_, err := parseWorkbook(wb, "2024-25", testMarkers)
	assert.ErrorIs(t, err, constants.ErrInvalidFormat)
}

func TestParseWorkbook_SkipsSummaryAndBlankRows(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"1", "Alpha", 10, 10, 10, 0},
		{"", "Nameless", 1, 1, 1, 1},
		{"3", "", 1, 1, 1, 1},
		{"99", "Grand Total", 12, 12, 12, 1},
		{"98", "TOTAL", 12, 12, 12, 1},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0].DistrictName)
}

func TestParseWorkbook_SortedByNameCaseInsensitive(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"2", "beta", 1, 1, 1, 1},
		{"1", "Alpha", 1, 1, 1, 1},
		{"3", "ALMORA", 1, 1, 1, 1},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ALMORA", rows[0].DistrictName)
	assert.Equal(t, "Alpha", rows[1].DistrictName)
	assert.Equal(t, "beta", rows[2].DistrictName)
}

func TestParseWorkbook_NumericCoercion(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"1", "Alpha", "123.0", "", "n/a", "4.9"},
	})

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 123, rows[0].Target)
	assert.Equal(t, 0, rows[0].Booking)
	assert.Equal(t, 0, rows[0].Installed)
	assert.Equal(t, 4, rows[0].Rejected)
}

func TestParseWorkbook_EmptySheet(t *testing.T) {
	wb := buildWorkbook(t, nil)

	rows, err := parseWorkbook(wb, "2024-25", testMarkers)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseWorkbook_Garbage(t *testing.T) {
	_, err := parseWorkbook(bytes.NewReader([]byte("not a workbook")), "2024-25", testMarkers)
	assert.ErrorIs(t, err, constants.ErrInvalidFormat)
}

func TestNormalizeDistrictCode(t *testing.T) {
	assert.Equal(t, "7", NormalizeDistrictCode("07"))
	assert.Equal(t, "7", NormalizeDistrictCode("7.0"))
	assert.Equal(t, "7", NormalizeDistrictCode(" 7 "))
	assert.Equal(t, "7", NormalizeDistrictCode("7.5"))
	assert.Equal(t, "ABC", NormalizeDistrictCode("ABC"))
	assert.Equal(t, "", NormalizeDistrictCode("  "))
}

func TestExpandedYearLabel(t *testing.T) {
	assert.Equal(t, "2024-2025", expandedYearLabel("2024-25"))
	assert.Equal(t, "2024", expandedYearLabel("2024"))
	assert.Equal(t, "20xx-25", expandedYearLabel("20xx-25"))
}
