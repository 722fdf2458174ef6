package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// ParseCSV decodes a spreadsheet CSV export into loose records. The header
// row supplies the keys, so the normalizer's alias handling applies to CSV
// exactly as it does to JSON.
func ParseCSV(payload []byte) ([]schedule.Record, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schedule.ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", schedule.ErrFormat)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]schedule.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(schedule.Record, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				rec[header[i]] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseHTML decodes a published HTML table (spreadsheet "publish to web"
// output) into loose records. The first table's header row supplies the
// keys.
func ParseHTML(payload []byte) ([]schedule.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schedule.ErrParse, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no table found", schedule.ErrFormat)
	}

	var header []string
	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = table.Find("tr").First()
	}
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, strings.TrimSpace(cell.Text()))
	})
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: missing header row", schedule.ErrFormat)
	}

	records := make([]schedule.Record, 0)
	dataRows := table.Find("tbody tr")
	if table.Find("thead").Length() == 0 {
		// Header came from the first body row; skip it.
		dataRows = dataRows.Slice(1, goquery.ToEnd)
	}
	dataRows.Each(func(_ int, row *goquery.Selection) {
		rec := make(schedule.Record, len(header))
		row.Find("td, th").Each(func(i int, cell *goquery.Selection) {
			if i >= len(header) || header[i] == "" {
				return
			}
			if v := strings.TrimSpace(cell.Text()); v != "" {
				rec[header[i]] = v
			}
		})
		records = append(records, rec)
	})
	return records, nil
}
