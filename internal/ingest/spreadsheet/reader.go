package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/smallbiznis/txnsight/internal/ingest/domain"
	"github.com/xuri/excelize/v2"
)

type reader struct{}

// Provide returns the excelize-backed spreadsheet reader.
func Provide() domain.Reader {
	return &reader{}
}

// Parse reads the first sheet of an xlsx workbook. The first row supplies
// the column headers, every following row becomes one RawRow. Cells beyond
// the header row and columns with an empty header are dropped.
func (p *reader) Parse(r io.Reader) ([]domain.RawRow, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	out := make([]domain.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(domain.RawRow, len(headers))
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = cell
		}
		out = append(out, row)
	}
	return out, nil
}
