package special

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// Sample rows shipped in the import template. Static by design: the template
// is configuration, not data.
var templateSamples = [][]interface{}{
	{
		"KMS001", "Front Brake Disc",
		"High-performance ventilated brake disc for Hyundai models",
		"HY-BD-001",
		"Hyundai Elantra 2020-2023, Hyundai i30 2019-2023",
		"ALT001, ALT002",
		25, 1250.00, 950.00,
		"NEW", "EACH", "FRONT", "BOTH", "UNKNOWN", "",
	},
	{
		"KMS002", "Rear Shock Absorber",
		"OEM replacement shock absorber for Kia Sportage",
		"KIA-SA-102",
		"Kia Sportage 2018-2022, Kia Sorento 2019-2021",
		"KIA102, SA102",
		12, 850.00, 650.00,
		"NEW", "EACH", "REAR", "LEFT", "UNKNOWN", "",
	},
}

// templateColumns is the template header order: human labels without the
// bookkeeping columns.
var templateColumns = []string{
	"System Number", "Part Name", "Description", "Factory Number",
	"Vehicle Reference", "Alternative Numbers", "Quantity Available",
	"Selling Price", "Wholesale Price", "Condition", "Packaging",
	"Front/Rear", "Left/Right", "Inner/Outer", "Image URL",
}

var templateInstructions = [][]interface{}{
	{"Korean Motor Spares - Import Template Instructions"},
	{},
	{"Field Descriptions:"},
	{"System Number", "Unique identifier for each part (required)"},
	{"Part Name", "Name/title of the part (required)"},
	{"Description", "Detailed description of the part (optional)"},
	{"Factory Number", "Manufacturer part number (optional)"},
	{"Vehicle Reference", "Comma-separated list of compatible vehicles"},
	{"Alternative Numbers", "Comma-separated list of alternative part numbers"},
	{"Quantity Available", "Number of items in stock (defaults to 0)"},
	{"Selling Price", "Retail price in ZAR (required, must be >= 0)"},
	{"Wholesale Price", "Wholesale price in ZAR (required, must be >= 0)"},
	{"Condition", "NEW, USED, REFURB, OPEN_BOX, or UNKNOWN"},
	{"Packaging", "EACH, SET, or KIT"},
	{"Front/Rear", "FRONT, REAR, or UNKNOWN (optional)"},
	{"Left/Right", "LEFT, RIGHT, BOTH, or UNKNOWN (optional)"},
	{"Inner/Outer", "INNR, OUTR, BOTH, or UNKNOWN (optional)"},
	{"Image URL", "URL to part image (optional)"},
	{},
	{"Notes:"},
	{"- Sample data is provided in the template sheet"},
	{"- System Number must be unique for each part"},
	{"- Use comma separation for multiple values in lists"},
	{"- Unrecognized category values fall back to their default"},
	{"- All prices should be in South African Rand (ZAR)"},
}

// TemplateWorkbook builds the downloadable import template: a sample sheet
// with the human column labels plus an Instructions sheet.
func TemplateWorkbook() (*Export, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Specials Template"); err != nil {
		return nil, err
	}
	sheet = "Specials Template"

	header := make([]interface{}, len(templateColumns))
	for i, h := range templateColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, sample := range templateSamples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := sample
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "A", "O", 22); err != nil {
		return nil, err
	}

	instr := "Instructions"
	if _, err := f.NewSheet(instr); err != nil {
		return nil, err
	}
	for i, line := range templateInstructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		row := line
		if err := f.SetSheetRow(instr, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(instr, "A", "A", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(instr, "B", "B", 55); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return &Export{
		Data:        buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "kms-specials-template.xlsx",
	}, nil
}
