package special

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	entity "kms.GO/model/entity"
)

type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

// Export holds a generated download artifact.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportSpecials serializes the collection as a downloadable workbook or
// delimited text file with machine field names as the header row.
func ExportSpecials(specials []entity.Special, format ExportFormat) (*Export, error) {
	switch format {
	case FormatCSV:
		return exportCSV(specials)
	case FormatXLSX, "":
		return exportXLSX(specials)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportName(ext string) string {
	return fmt.Sprintf("specials-export-%s.%s", time.Now().Format("2006-01-02"), ext)
}

func exportXLSX(specials []entity.Special) (*Export, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Specials"); err != nil {
		return nil, err
	}
	sheet = "Specials"

	header := make([]interface{}, len(machineHeaders))
	for i, h := range machineHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, s := range specials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := specialToRow(s)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return &Export{
		Data:        buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    exportName("xlsx"),
	}, nil
}

func exportCSV(specials []entity.Special) (*Export, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(machineHeaders); err != nil {
		return nil, err
	}
	for _, s := range specials {
		cells := specialToRow(s)
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = fmt.Sprint(c)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &Export{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    exportName("csv"),
	}, nil
}
