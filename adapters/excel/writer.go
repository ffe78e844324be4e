package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"clockrate/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteTable writes a numeric table to path, as XLSX when the extension is .xlsx and CSV otherwise
func WriteTable(path string, headers []string, rows [][]float64) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(path, headers, rows)
	}
	return WriteCSV(path, headers, rows)
}

// WriteCSV writes the header and rows with integral values printed without a fraction
func WriteCSV(path string, headers []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return errors.IOError("failed to write CSV header", err)
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = strconv.FormatFloat(row[i], 'f', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return errors.IOError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.IOError("failed to flush CSV file", err)
	}
	return nil
}

// WriteXLSX writes the table to Sheet1 of a new workbook
func WriteXLSX(path string, headers []string, rows [][]float64) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return errors.IOError("failed to open sheet writer", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.IOError("failed to write header row", err)
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return errors.IOError(fmt.Sprintf("failed to write row %d", r+2), err)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.IOError("failed to flush sheet", err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.IOError(fmt.Sprintf("failed to save %s", path), err)
	}
	return nil
}
