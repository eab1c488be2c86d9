package special

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validRow() Row {
	return Row{
		"system_number":   "KMS100",
		"part_name":       "Front Brake Pads",
		"selling_price":   "199.99",
		"wholesale_price": "149.50",
	}
}

func TestValidateRow_MinimalDefaults(t *testing.T) {
	s, errs := ValidateRow(validRow())
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if s.SystemNumber != "KMS100" || s.PartName != "Front Brake Pads" {
		t.Errorf("required fields not carried: %+v", s)
	}
	if s.SellingPrice != 199.99 || s.WholesalePrice != 149.5 {
		t.Errorf("prices = %v/%v", s.SellingPrice, s.WholesalePrice)
	}
	if s.QuantityAvailable != 0 {
		t.Errorf("quantity = %d, want 0 default", s.QuantityAvailable)
	}
	if s.FrRr != "UNKNOWN" || s.LhRh != "UNKNOWN" || s.InrOtr != "UNKNOWN" {
		t.Errorf("position defaults = %s/%s/%s", s.FrRr, s.LhRh, s.InrOtr)
	}
	if s.Packaging != "EACH" || s.Condition != "NEW" {
		t.Errorf("packaging/condition defaults = %s/%s", s.Packaging, s.Condition)
	}
	if s.ID == "" {
		t.Error("id not generated")
	}
	if s.CreatedAt == 0 || s.UpdatedAt == 0 {
		t.Error("timestamps not stamped")
	}
}

func TestValidateRow_HumanLabels(t *testing.T) {
	row := Row{
		"System Number":   "KMS200",
		"Part Name":       "Shock Absorber",
		"Selling Price":   "850",
		"Wholesale Price": "650",
		"Front/Rear":      "rear",
		"Condition":       "used",
	}
	s, errs := ValidateRow(row)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if s.SystemNumber != "KMS200" {
		t.Errorf("SystemNumber = %q", s.SystemNumber)
	}
	if s.FrRr != "REAR" || s.Condition != "USED" {
		t.Errorf("enum casing not normalized: %s/%s", s.FrRr, s.Condition)
	}
}

func TestValidateRow_MachineNameWins(t *testing.T) {
	row := validRow()
	row["System Number"] = "LABEL-VALUE"
	s, errs := ValidateRow(row)
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if s.SystemNumber != "KMS100" {
		t.Errorf("SystemNumber = %q, want machine key to win", s.SystemNumber)
	}
}

func TestValidateRow_MissingRequired(t *testing.T) {
	row := validRow()
	delete(row, "part_name")
	_, errs := ValidateRow(row)
	if len(errs) != 1 || errs[0] != "Part name is required" {
		t.Errorf("errs = %v, want exactly the part name error", errs)
	}

	row = validRow()
	row["system_number"] = "   "
	_, errs = ValidateRow(row)
	if len(errs) != 1 || errs[0] != "System number is required" {
		t.Errorf("errs = %v, want exactly the system number error", errs)
	}
}

func TestValidateRow_InvalidPriceIsHardError(t *testing.T) {
	row := validRow()
	row["selling_price"] = "abc"
	_, errs := ValidateRow(row)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
	if !strings.Contains(errs[0], "Invalid numeric value for field selling_price: abc") {
		t.Errorf("error message = %q", errs[0])
	}
}

func TestValidateRow_QuantityGarbageDefaultsSilently(t *testing.T) {
	row := validRow()
	row["quantity_available"] = "lots"
	s, errs := ValidateRow(row)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, quantity must never error", errs)
	}
	if s.QuantityAvailable != 0 {
		t.Errorf("quantity = %d, want 0", s.QuantityAvailable)
	}
}

func TestValidateRow_EnumFallback(t *testing.T) {
	row := validRow()
	row["fr_rr"] = "frontish"
	s, errs := ValidateRow(row)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, categorical noise must not fail", errs)
	}
	if s.FrRr != "UNKNOWN" {
		t.Errorf("FrRr = %q, want UNKNOWN fallback", s.FrRr)
	}
}

func TestValidateRow_ListSplitting(t *testing.T) {
	row := validRow()
	row["vehicle_reference"] = "Hyundai i30, , Kia Sportage ,"
	row["alter_numbers"] = "   "
	s, errs := ValidateRow(row)
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if len(s.VehicleReference) != 2 || s.VehicleReference[0] != "Hyundai i30" || s.VehicleReference[1] != "Kia Sportage" {
		t.Errorf("VehicleReference = %v", s.VehicleReference)
	}
	if len(s.AlterNumbers) != 0 {
		t.Errorf("AlterNumbers = %v, want empty", s.AlterNumbers)
	}
}

func TestValidateRow_IDHandling(t *testing.T) {
	id := uuid.NewString()
	row := validRow()
	row["id"] = id
	s, _ := ValidateRow(row)
	if s.ID != id {
		t.Errorf("well-formed id not kept: %q", s.ID)
	}

	row["id"] = "not-a-uuid"
	s, _ = ValidateRow(row)
	if s.ID == "not-a-uuid" || s.ID == "" {
		t.Errorf("malformed id must be regenerated, got %q", s.ID)
	}
}
