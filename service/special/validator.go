package special

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	entity "kms.GO/model/entity"
)

// lookup returns the raw value for a machine field, accepting either the
// machine name or the human template label as the row key. The machine name
// wins when both are present.
func lookup(row Row, field string) (interface{}, bool) {
	if v, ok := row[field]; ok && v != nil {
		return v, true
	}
	if label, ok := humanLabels[field]; ok {
		if v, ok := row[label]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// strField extracts and trims a string value for a machine field.
func strField(row Row, field string) string {
	v, ok := lookup(row, field)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers and numeric cells; keep integers undecorated.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// listField accepts a native list or a comma-separated string.
func listField(row Row, field string) []string {
	v, ok := lookup(row, field)
	if !ok {
		return []string{}
	}
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := strings.TrimSpace(it); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := strings.TrimSpace(fmt.Sprintf("%v", it)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return SplitList(strField(row, field))
	}
}

// enumField resolves a categorical value against its closed set, falling
// back to the set's default member on unrecognized input.
func enumField(row Row, field string, set entity.EnumSet) string {
	raw := strings.ToUpper(strField(row, field))
	if raw == "" {
		return set.Fallback
	}
	return set.Resolve(raw)
}

// quantityField parses quantity_available. The field is advisory, so parse
// failures and absence default to 0 instead of erroring.
func quantityField(row Row, field string) int {
	v, ok := lookup(row, field)
	if !ok {
		return 0
	}
	if f, isNum := v.(float64); isNum {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	n, err := strconv.Atoi(strField(row, field))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// priceField parses a required decimal price. Prices matter commercially,
// so absence or parse failure is a hard validation error.
func priceField(row Row, field string) (float64, error) {
	v, ok := lookup(row, field)
	if !ok {
		return 0, fmt.Errorf("Invalid numeric value for field %s: <missing>", field)
	}
	if f, isNum := v.(float64); isNum {
		if f < 0 {
			return 0, fmt.Errorf("Invalid numeric value for field %s: %v", field, f)
		}
		return f, nil
	}
	raw := strField(row, field)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("Invalid numeric value for field %s: %s", field, raw)
	}
	return f, nil
}

// timestampField accepts an epoch-ms number or an ISO-like string, else now.
func timestampField(row Row, field string, now int64) int64 {
	v, ok := lookup(row, field)
	if !ok {
		return now
	}
	if f, isNum := v.(float64); isNum && f > 0 {
		return int64(f)
	}
	raw := strField(row, field)
	if raw == "" {
		return now
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		return ms
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixMilli()
		}
	}
	return now
}

// ValidateRow normalizes one untyped row into a canonical Special. The
// returned error list is empty for a valid row; every failed field is
// reported, not just the first.
func ValidateRow(row Row) (entity.Special, []string) {
	var errs []string
	now := time.Now().UnixMilli()

	s := entity.Special{
		SystemNumber:      strField(row, "system_number"),
		FactoryNumber:     entity.OptStr(strField(row, "factory_number")),
		PartName:          strField(row, "part_name"),
		PartDescription:   entity.OptStr(strField(row, "part_description")),
		VehicleReference:  listField(row, "vehicle_reference"),
		AlterNumbers:      listField(row, "alter_numbers"),
		FrRr:              enumField(row, "fr_rr", entity.FrRrEnum),
		LhRh:              enumField(row, "lh_rh", entity.LhRhEnum),
		InrOtr:            enumField(row, "inr_otr", entity.InrOtrEnum),
		QuantityAvailable: quantityField(row, "quantity_available"),
		Packaging:         enumField(row, "packaging", entity.PackagingEnum),
		Condition:         enumField(row, "condition", entity.ConditionEnum),
		Img:               entity.OptStr(strField(row, "img")),
		CreatedAt:         timestampField(row, "created_at", now),
		UpdatedAt:         timestampField(row, "updated_at", now),
	}

	if s.SystemNumber == "" {
		errs = append(errs, "System number is required")
	}
	if s.PartName == "" {
		errs = append(errs, "Part name is required")
	}

	if p, err := priceField(row, "selling_price"); err != nil {
		errs = append(errs, err.Error())
	} else {
		s.SellingPrice = p
	}
	if p, err := priceField(row, "wholesale_price"); err != nil {
		errs = append(errs, err.Error())
	} else {
		s.WholesalePrice = p
	}

	// Keep a well-formed incoming id, generate otherwise. Ids are opaque to
	// clients and never client-mutable once assigned.
	if id := strField(row, "id"); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			s.ID = id
		} else {
			s.ID = uuid.NewString()
		}
	} else {
		s.ID = uuid.NewString()
	}

	return s, errs
}
