package special

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	entity "kms.GO/model/entity"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Filters maps each categorical field to the set of accepted values. An
// empty set means no constraint on that field.
type Filters struct {
	FrRr      []string `json:"fr_rr,omitempty"`
	LhRh      []string `json:"lh_rh,omitempty"`
	InrOtr    []string `json:"inr_otr,omitempty"`
	Packaging []string `json:"packaging,omitempty"`
	Condition []string `json:"condition,omitempty"`
}

type QueryParams struct {
	Q         string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // "asc" (default) or "desc"
	Filters   Filters
}

type PaginatedResult struct {
	Data       []entity.Special
	TotalCount int
	Page       int
	Limit      int
	TotalPages int
}

// Query filters, sorts and paginates the full collection. Counts are taken
// from the filtered sequence, so a page past the end yields empty data with
// correct totals rather than an error.
func Query(all []entity.Special, p QueryParams) PaginatedResult {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filtered := filterSpecials(all, p)
	if p.SortBy != "" {
		filtered = sortSpecials(filtered, p.SortBy, p.SortOrder)
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	data := []entity.Special{}
	if start < total {
		if end > total {
			end = total
		}
		data = filtered[start:end]
	}

	return PaginatedResult{
		Data:       data,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func filterSpecials(all []entity.Special, p QueryParams) []entity.Special {
	q := strings.ToLower(strings.TrimSpace(p.Q))
	filtered := make([]entity.Special, 0, len(all))
	for _, s := range all {
		if q != "" && !matchesQuery(s, q) {
			continue
		}
		if !matchesFilters(s, p.Filters) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// matchesQuery is an OR across fields: any one substring hit keeps the record.
func matchesQuery(s entity.Special, q string) bool {
	if containsFold(entity.StrOrEmpty(s.PartDescription), q) ||
		containsFold(s.SystemNumber, q) ||
		containsFold(entity.StrOrEmpty(s.FactoryNumber), q) ||
		containsFold(s.PartName, q) {
		return true
	}
	for _, ref := range s.VehicleReference {
		if containsFold(ref, q) {
			return true
		}
	}
	for _, num := range s.AlterNumbers {
		if containsFold(num, q) {
			return true
		}
	}
	return false
}

// containsFold expects q already lower-cased.
func containsFold(hay, q string) bool {
	return strings.Contains(strings.ToLower(hay), q)
}

// matchesFilters combines fields with AND; accepted values within one field
// combine with OR.
func matchesFilters(s entity.Special, f Filters) bool {
	return memberOf(s.FrRr, f.FrRr) &&
		memberOf(s.LhRh, f.LhRh) &&
		memberOf(s.InrOtr, f.InrOtr) &&
		memberOf(s.Packaging, f.Packaging) &&
		memberOf(s.Condition, f.Condition)
}

func memberOf(value string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, a := range accepted {
		if a == value {
			return true
		}
	}
	return false
}

// sortSpecials stable-sorts a copy by the given field. String fields use
// locale-aware collation, numeric fields compare numerically, list fields
// by their comma-joined form. desc negates the comparison, never the input
// order, so ties keep their original relative order either way.
func sortSpecials(specials []entity.Special, sortBy, sortOrder string) []entity.Special {
	sorted := make([]entity.Special, len(specials))
	copy(sorted, specials)
	coll := collate.New(language.English)
	desc := sortOrder == "desc"
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareField(coll, sorted[i], sorted[j], sortBy)
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return sorted
}

func compareField(coll *collate.Collator, a, b entity.Special, field string) int {
	av := fieldValue(a, field)
	bv := fieldValue(b, field)
	an, aNum := asNumber(av)
	bn, bNum := asNumber(bv)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, aStr := av.(string)
	bs, bStr := bv.(string)
	if aStr && bStr {
		return coll.CompareString(as, bs)
	}
	return coll.CompareString(stringify(av), stringify(bv))
}

func fieldValue(s entity.Special, field string) interface{} {
	switch field {
	case "id":
		return s.ID
	case "system_number":
		return s.SystemNumber
	case "factory_number":
		return entity.StrOrEmpty(s.FactoryNumber)
	case "part_name":
		return s.PartName
	case "part_description":
		return entity.StrOrEmpty(s.PartDescription)
	case "vehicle_reference":
		return JoinList(s.VehicleReference)
	case "alter_numbers":
		return JoinList(s.AlterNumbers)
	case "fr_rr":
		return s.FrRr
	case "lh_rh":
		return s.LhRh
	case "inr_otr":
		return s.InrOtr
	case "quantity_available":
		return s.QuantityAvailable
	case "selling_price":
		return s.SellingPrice
	case "wholesale_price":
		return s.WholesalePrice
	case "packaging":
		return s.Packaging
	case "condition":
		return s.Condition
	case "img":
		return entity.StrOrEmpty(s.Img)
	case "created_at":
		return s.CreatedAt
	case "updated_at":
		return s.UpdatedAt
	default:
		return ""
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
