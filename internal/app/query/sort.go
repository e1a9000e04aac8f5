package query

import (
	"net/url"
	"strings"
)

const (
	ParamSort  = "sort"
	ParamOrder = "order"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultSortKey = "COLLECTION_DEFAULT"
)

// upstream ProductCollectionSortKeys
var collectionSortKeys = map[string]bool{
	"BEST_SELLING":       true,
	"COLLECTION_DEFAULT": true,
	"CREATED":            true,
	"ID":                 true,
	"MANUAL":             true,
	"PRICE":              true,
	"RELEVANCE":          true,
	"TITLE":              true,
}

// SortState is the URL representation of a sort choice. Order is empty when the key has no direction.
type SortState struct {
	Sort  string `json:"sort"`
	Order string `json:"order,omitempty"`
}

// Values returns the sort and order parameters
func (s SortState) Values() url.Values {
	v := url.Values{}
	v.Set(ParamSort, s.Sort)
	if s.Order != "" {
		v.Set(ParamOrder, s.Order)
	}
	return v
}

// HandleSort maps a sort option to its URL state
func HandleSort(option string) SortState {
	switch option {
	case "PRICE_ASC":
		return SortState{Sort: "PRICE", Order: OrderAsc}
	case "PRICE_DESC":
		return SortState{Sort: "PRICE", Order: OrderDesc}
	case "TITLE_ASC":
		return SortState{Sort: "TITLE", Order: OrderAsc}
	case "TITLE_DESC":
		return SortState{Sort: "TITLE", Order: OrderDesc}
	case "CREATED_ASC":
		return SortState{Sort: "CREATED", Order: OrderAsc}
	case "CREATED_DESC":
		return SortState{Sort: "CREATED", Order: OrderDesc}
	default:
		return SortState{Sort: option}
	}
}

// SortKey is the upstream sort of a listing query
type SortKey struct {
	Key     string
	Reverse bool
}

// ResolveSort reads sort and order from the request.
// Keys the upstream does not know fall back to COLLECTION_DEFAULT.
func ResolveSort(params url.Values) SortKey {
	key := strings.ToUpper(strings.TrimSpace(params.Get(ParamSort)))
	if !collectionSortKeys[key] {
		key = DefaultSortKey
	}
	return SortKey{
		Key:     key,
		Reverse: params.Get(ParamOrder) == OrderDesc,
	}
}

// State converts the resolved sort back to its URL form
func (k SortKey) State() SortState {
	s := SortState{Sort: k.Key}
	if k.Reverse {
		s.Order = OrderDesc
	} else if k.Key == "PRICE" || k.Key == "TITLE" || k.Key == "CREATED" {
		s.Order = OrderAsc
	}
	return s
}

// SortOption is a labelled sort choice for listing pages
type SortOption struct {
	Label  string    `json:"label"`
	Value  string    `json:"value"`
	State  SortState `json:"state"`
	Active bool      `json:"active"`
}

var sortOptions = []struct{ label, value string }{
	{"Featured", "COLLECTION_DEFAULT"},
	{"Best Selling", "BEST_SELLING"},
	{"Price: Low to High", "PRICE_ASC"},
	{"Price: High to Low", "PRICE_DESC"},
	{"Alphabetically: A-Z", "TITLE_ASC"},
	{"Alphabetically: Z-A", "TITLE_DESC"},
	{"Date: New to Old", "CREATED_DESC"},
	{"Date: Old to New", "CREATED_ASC"},
}

// SortOptions lists the available sort choices, marking the one matching current
func SortOptions(current SortKey) []SortOption {
	active := current.State()
	options := make([]SortOption, 0, len(sortOptions))
	for _, o := range sortOptions {
		state := HandleSort(o.value)
		isActive := state.Sort == active.Sort &&
			(state.Order == active.Order || (state.Order == "" && !current.Reverse))
		options = append(options, SortOption{
			Label:  o.label,
			Value:  o.value,
			State:  state,
			Active: isActive,
		})
	}
	return options
}
