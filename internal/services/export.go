package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook — готовый XLSX-файл в памяти.
type Workbook struct {
	FileName string
	Rows     int
	Data     *bytes.Buffer
}

// BuildWorkbook пишет один лист: жирная строка заголовков, затем данные.
func BuildWorkbook(name string, headers []string, rows [][]interface{}) (*Workbook, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Данные"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, err
		}
		lastCol, _, _ := excelize.SplitCellName(last)
		if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
			return nil, err
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &Workbook{
		FileName: fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02")),
		Rows:     len(rows),
		Data:     buf,
	}, nil
}
