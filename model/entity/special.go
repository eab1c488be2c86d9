package entity

// Special is one catalog entry: a part offered at a price. Field names match
// the on-disk JSON and the spreadsheet machine headers.
type Special struct {
	ID                string   `json:"id"`
	SystemNumber      string   `json:"system_number"`
	FactoryNumber     *string  `json:"factory_number"`
	PartName          string   `json:"part_name"`
	PartDescription   *string  `json:"part_description"`
	VehicleReference  []string `json:"vehicle_reference"`
	AlterNumbers      []string `json:"alter_numbers"`
	FrRr              string   `json:"fr_rr"`
	LhRh              string   `json:"lh_rh"`
	InrOtr            string   `json:"inr_otr"`
	QuantityAvailable int      `json:"quantity_available"`
	SellingPrice      float64  `json:"selling_price"`
	WholesalePrice    float64  `json:"wholesale_price"`
	Packaging         string   `json:"packaging"`
	Condition         string   `json:"condition"`
	Img               *string  `json:"img"`
	CreatedAt         int64    `json:"created_at"` // unix ms
	UpdatedAt         int64    `json:"updated_at"` // unix ms
}

// EnumSet is a closed set of accepted values for a categorical field.
// Unrecognized input resolves to the Fallback member instead of failing,
// which keeps bulk imports resilient to messy spreadsheet data.
type EnumSet struct {
	Values   []string
	Fallback string
}

var (
	FrRrEnum      = EnumSet{Values: []string{"FRONT", "REAR", "UNKNOWN"}, Fallback: "UNKNOWN"}
	LhRhEnum      = EnumSet{Values: []string{"LEFT", "RIGHT", "BOTH", "UNKNOWN"}, Fallback: "UNKNOWN"}
	InrOtrEnum    = EnumSet{Values: []string{"INNR", "OUTR", "BOTH", "UNKNOWN"}, Fallback: "UNKNOWN"}
	PackagingEnum = EnumSet{Values: []string{"EACH", "SET", "KIT"}, Fallback: "EACH"}
	ConditionEnum = EnumSet{Values: []string{"NEW", "USED", "REFURB", "OPEN_BOX", "UNKNOWN"}, Fallback: "NEW"}
)

// Resolve returns raw if it is a member of the set, otherwise the fallback
// value. Callers are expected to trim and upper-case raw first.
func (e EnumSet) Resolve(raw string) string {
	for _, v := range e.Values {
		if v == raw {
			return v
		}
	}
	return e.Fallback
}

// Contains reports whether v is a member of the set.
func (e EnumSet) Contains(v string) bool {
	for _, m := range e.Values {
		if m == v {
			return true
		}
	}
	return false
}

// StrOrEmpty dereferences an optional string field.
func StrOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// OptStr returns nil for an empty string, matching the null handling of the
// on-disk format.
func OptStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
