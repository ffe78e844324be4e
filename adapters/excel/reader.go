package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clockrate/domain/measurement"
	"clockrate/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"
)

// DataReader handles reading measurement tables from CSV and Excel files
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader; the file type follows the extension and defaults to CSV
func NewDataReader(filePath string) *DataReader {
	fileType := fileTypeCSV
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		fileType = fileTypeXLSX
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// FileType returns "csv" or "xlsx"
func (r *DataReader) FileType() string {
	return r.fileType
}

// ReadData reads the file into a raw table. Every failure is an IO_ERROR.
func (r *DataReader) ReadData() (*measurement.RawTable, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	info, err := os.Stat(r.filePath)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}
	if info.IsDir() {
		return nil, errors.IOError(fmt.Sprintf("%s is a directory", r.filePath), nil)
	}

	var rows [][]string
	switch r.fileType {
	case fileTypeXLSX:
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.IOError(fmt.Sprintf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType)), nil)
	}

	return r.processRows(rows), nil
}

// readExcelRows reads the first worksheet of an .xlsx workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := "Sheet1"
	if sheets := f.GetSheetList(); len(sheets) > 0 {
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read %s", sheet), err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads a comma-separated file; ragged rows are a parse error
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("failed to read CSV file", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into a RawTable keyed by header
func (r *DataReader) processRows(rows [][]string) *measurement.RawTable {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]measurement.RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(measurement.RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &measurement.RawTable{
		Source:  r.filePath,
		Columns: headers,
		Rows:    dataRows,
	}
}
