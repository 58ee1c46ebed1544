// Package export renders table listings as Excel workbooks.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/utils/listing"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one table: a header row and the data rows beneath it.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Source builds the sheet for an entity from a listing query.
type Source func(ctx context.Context, q listing.Query) (*Sheet, error)

// Service maps entity names to their sheet sources.
type Service struct {
	sources map[string]Source
}

func NewService(sources map[string]Source) *Service {
	return &Service{sources: sources}
}

// Export renders the named entity and returns the workbook bytes and a
// suggested filename.
func (s *Service) Export(ctx context.Context, entity string, q listing.Query, now time.Time) ([]byte, string, error) {
	src, ok := s.sources[entity]
	if !ok {
		return nil, "", apperrors.ErrUnsupportedEntity.WithMessage("cannot export %q", entity)
	}
	sheet, err := src(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := Render(sheet)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s-%s.xlsx", entity, now.Format("20060102-150405")), nil
}

// Render writes sheet into a new workbook with a styled, frozen header.
func Render(sheet *Sheet) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet.Name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet.Name != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet.Name, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header %s: %w", header, err)
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet.Name, name, name, 20); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, row := range sheet.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheet.Name, cell, cellValue(value)); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	case *int:
		if t == nil {
			return ""
		}
		return *t
	case *float64:
		if t == nil {
			return ""
		}
		return *t
	}
	return v
}
