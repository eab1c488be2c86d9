package special

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	entity "kms.GO/model/entity"
)

// Row is one untyped record as parsed from a sheet or a JSON body. Keys may
// be machine field names or the human template labels.
type Row map[string]interface{}

// machineHeaders is the export column order.
var machineHeaders = []string{
	"id",
	"system_number",
	"factory_number",
	"part_name",
	"part_description",
	"vehicle_reference",
	"alter_numbers",
	"fr_rr",
	"lh_rh",
	"inr_otr",
	"quantity_available",
	"selling_price",
	"wholesale_price",
	"packaging",
	"condition",
	"img",
	"created_at",
	"updated_at",
}

// humanLabels maps machine field names to the template column labels.
var humanLabels = map[string]string{
	"id":                 "ID",
	"system_number":      "System Number",
	"factory_number":     "Factory Number",
	"part_name":          "Part Name",
	"part_description":   "Description",
	"vehicle_reference":  "Vehicle Reference",
	"alter_numbers":      "Alternative Numbers",
	"fr_rr":              "Front/Rear",
	"lh_rh":              "Left/Right",
	"inr_otr":            "Inner/Outer",
	"quantity_available": "Quantity Available",
	"selling_price":      "Selling Price",
	"wholesale_price":    "Wholesale Price",
	"packaging":          "Packaging",
	"condition":          "Condition",
	"img":                "Image URL",
	"created_at":         "Created At",
	"updated_at":         "Updated At",
}

// SplitList converts a comma-separated string to a list, trimming items and
// dropping empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinList is the export-side inverse of SplitList.
func JoinList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, ", ")
}

// specialToRow flattens a record into scalar cells in machineHeaders order.
func specialToRow(s entity.Special) []interface{} {
	return []interface{}{
		s.ID,
		s.SystemNumber,
		entity.StrOrEmpty(s.FactoryNumber),
		s.PartName,
		entity.StrOrEmpty(s.PartDescription),
		JoinList(s.VehicleReference),
		JoinList(s.AlterNumbers),
		s.FrRr,
		s.LhRh,
		s.InrOtr,
		s.QuantityAvailable,
		s.SellingPrice,
		s.WholesalePrice,
		s.Packaging,
		s.Condition,
		entity.StrOrEmpty(s.Img),
		s.CreatedAt,
		s.UpdatedAt,
	}
}

// ParseSheet reads tabular rows from an uploaded file. The first row is the
// header; following rows become Row maps keyed by the header cells. CSV is
// chosen by file extension, anything else is parsed as an xlsx workbook.
func ParseSheet(r io.Reader, filename string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return parseCSV(r)
	}
	return parseWorkbook(r)
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return tableToRows(records), nil
}

func parseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return tableToRows(records), nil
}

func tableToRows(records [][]string) []Row {
	if len(records) < 1 {
		return nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := Row{}
		empty := true
		for i, cell := range rec {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = cell
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
