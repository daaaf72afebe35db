package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

const missingCell = "NaN"

var errNoColumns = errors.New("No columns to parse from file")

type CSVConverter struct{}

func NewCSVConverter() *CSVConverter {
	return &CSVConverter{}
}

func (c *CSVConverter) ConvertToText(_ context.Context, data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		rows = append(rows, rec)
	}

	return renderTable(rows)
}

type XLSXConverter struct{}

func NewXLSXConverter() *XLSXConverter {
	return &XLSXConverter{}
}

// ConvertToText читает только первый лист книги.
func (c *XLSXConverter) ConvertToText(_ context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("sheet %q: %w", sheets[0], err)
	}

	return renderTable(rows)
}

// renderTable prints rows[0] as the header and right-aligns every column
// to its widest cell. There is no index column.
func renderTable(rows [][]string) (string, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return "", errNoColumns
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	cells := make([][]string, len(rows))
	widths := make([]int, cols)
	for i, row := range rows {
		cells[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			if v == "" && i > 0 {
				v = missingCell
			}
			if v == "" {
				v = fmt.Sprintf("Unnamed: %d", j)
			}
			cells[i][j] = v
			if w := runewidth.StringWidth(v); w > widths[j] {
				widths[j] = w
			}
		}
	}

	lines := make([]string, 0, len(cells))
	for _, row := range cells {
		parts := make([]string, cols)
		for j, v := range row {
			parts[j] = runewidth.FillLeft(v, widths[j])
		}
		lines = append(lines, strings.Join(parts, "  "))
	}

	return strings.Join(lines, "\n"), nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
