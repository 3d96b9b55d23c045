package importer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/domain/dto"
	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// headerCell keeps header order, because metric resolution must prefer the
// leftmost matching column like the source files expect.
type headerCell struct {
	normalized string
	index      int
}

var metricNames = []string{"target", "booking", "installed", "rejected"}

// parseWorkbook reads the first sheet, resolves the semantic columns and emits
// normalized rows sorted by district name. Markers is the lower-cased set of
// summary-row labels to skip.
func parseWorkbook(r io.Reader, yearLabel domain.YearLabel, markers map[string]struct{}) ([]dto.ParsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", constants.ErrInvalidFormat)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", constants.ErrInvalidFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := normalizeHeaders(rows[0])

	codeIdx := findHeader(headers, "distcode", "districtcode")
	nameIdx := findHeader(headers, "district", "districtname")
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("Distcode and District columns are required: %w", constants.ErrInvalidFormat)
	}

	metricIdx := make(map[string]int, len(metricNames))
	for _, metric := range metricNames {
		idx := resolveMetricColumn(headers, metric, yearLabel)
		if idx < 0 {
			return nil, fmt.Errorf("Target, Booking, Installed and Rejected columns are required: %w", constants.ErrInvalidFormat)
		}
		metricIdx[metric] = idx
	}

	parsed := make([]dto.ParsedRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := NormalizeDistrictCode(cellAt(row, codeIdx))
		name := strings.TrimSpace(cellAt(row, nameIdx))

		if code == "" || name == "" {
			continue
		}
		if _, skip := markers[strings.ToLower(name)]; skip {
			// spreadsheet summary row, not data
			continue
		}

		parsed = append(parsed, dto.ParsedRow{
			DistrictCode: code,
			DistrictName: name,
			Target:       parseIntCell(cellAt(row, metricIdx["target"])),
			Booking:      parseIntCell(cellAt(row, metricIdx["booking"])),
			Installed:    parseIntCell(cellAt(row, metricIdx["installed"])),
			Rejected:     parseIntCell(cellAt(row, metricIdx["rejected"])),
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return strings.ToLower(parsed[i].DistrictName) < strings.ToLower(parsed[j].DistrictName)
	})

	return parsed, nil
}

func normalizeHeaders(row []string) []headerCell {
	headers := make([]headerCell, 0, len(row))
	for i, v := range row {
		normalized := normalizeHeader(v)
		if normalized == "" {
			continue
		}
		headers = append(headers, headerCell{normalized: normalized, index: i})
	}
	return headers
}

func normalizeHeader(v string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), " ", "")
}

func findHeader(headers []headerCell, names ...string) int {
	for _, name := range names {
		for _, h := range headers {
			if h.normalized == name {
				return h.index
			}
		}
	}
	return -1
}

// resolveMetricColumn tolerates column-name drift: exact metric name first,
// then any header ending in _<metric>, then any header carrying both the
// metric name and a token derived from the year label ("2024-25" matches
// either "202425" or the expanded "20242025").
func resolveMetricColumn(headers []headerCell, metric string, yearLabel domain.YearLabel) int {
	if idx := findHeader(headers, metric); idx >= 0 {
		return idx
	}

	suffix := "_" + metric
	for _, h := range headers {
		if strings.HasSuffix(h.normalized, suffix) {
			return h.index
		}
	}

	yearToken := strings.ReplaceAll(yearLabel, "-", "")
	fullYearToken := strings.ReplaceAll(expandedYearLabel(yearLabel), "-", "")
	for _, h := range headers {
		if strings.Contains(h.normalized, metric) &&
			(strings.Contains(h.normalized, yearToken) || strings.Contains(h.normalized, fullYearToken)) {
			return h.index
		}
	}

	return -1
}

// expandedYearLabel turns "2024-25" into "2024-2025"; anything that does not
// look like a YYYY-YY label passes through unchanged.
func expandedYearLabel(yearLabel domain.YearLabel) string {
	start, endSuffix, found := strings.Cut(yearLabel, "-")
	if !found || len(start) != 4 || len(endSuffix) != 2 || !isDigits(start) || !isDigits(endSuffix) {
		return yearLabel
	}

	return start + "-" + start[:2] + endSuffix
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// NormalizeDistrictCode collapses numeric-looking codes so "07", "7" and "7.0"
// identify the same district; non-numeric codes pass through trimmed. Shared
// by the import path and any future direct-entry path.
func NormalizeDistrictCode(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}

	return strconv.FormatInt(d.IntPart(), 10)
}

// parseIntCell coerces a cell to an integer, tolerating "123.0"-style floats.
// Blank or garbage cells coerce to 0; source spreadsheets are assumed noisy.
func parseIntCell(v string) int {
	value := strings.TrimSpace(v)
	if value == "" {
		return 0
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}

	return int(d.IntPart())
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
