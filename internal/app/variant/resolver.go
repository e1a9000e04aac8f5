// Package variant resolves a product variant from a partial option selection and
// computes the navigable state of every option value for selector controls.
package variant

import (
	"net/url"
	"strings"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// OptionValue is one selectable value of an option axis
type OptionValue struct {
	Value string
	// IsActive marks the value carried by the displayed variant
	IsActive bool
	// Exists reports whether some variant has this value with the other axes held fixed
	Exists bool
	// IsAvailable additionally requires that variant to be for sale
	IsAvailable bool
	// Query is the full option selection a control navigates to
	Query url.Values
	To    string
}

// Option is the navigable state of one option axis
type Option struct {
	Name          string
	SelectedValue string
	Values        []OptionValue
}

// Resolution is the outcome of resolving a selection
type Resolution struct {
	Variant *domain.Variant
	// ExactMatch is false when the requested combination did not exist and
	// Variant is the first available fallback
	ExactMatch bool
	// Requested is the selection that was looked up, defaults filled in
	Requested map[string]string
	Options   []Option
}

// SelectionFromQuery picks the request parameters that name an option of the product.
// Names match case-insensitively and are returned in the product's spelling.
func SelectionFromQuery(product *domain.Product, params url.Values) map[string]string {
	selection := make(map[string]string)
	for key, values := range params {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		for _, opt := range product.Options {
			if strings.EqualFold(opt.Name, key) {
				selection[opt.Name] = values[0]
			}
		}
	}
	return selection
}

// Resolve finds the variant matching selection. Axes missing from selection default to
// the first available variant's values. It has no side effects.
func Resolve(product *domain.Product, selection map[string]string) Resolution {
	fallback := product.FirstAvailableVariant()

	requested := make(map[string]string, len(product.Options))
	for _, opt := range product.Options {
		if v, ok := lookup(selection, opt.Name); ok && v != "" {
			requested[opt.Name] = canonicalValue(opt, v)
			continue
		}
		if fallback != nil {
			if v, ok := fallback.OptionValue(opt.Name); ok {
				requested[opt.Name] = v
			}
		}
	}

	res := Resolution{Requested: requested}
	if match := findVariant(product, requested); match != nil {
		res.Variant = match
		res.ExactMatch = true
	} else {
		res.Variant = fallback
	}

	res.Options = navigableOptions(product, res.Variant)
	return res
}

func navigableOptions(product *domain.Product, active *domain.Variant) []Option {
	current := make(map[string]string, len(product.Options))
	if active != nil {
		for _, opt := range product.Options {
			if v, ok := active.OptionValue(opt.Name); ok {
				current[opt.Name] = v
			}
		}
	}

	options := make([]Option, 0, len(product.Options))
	for _, opt := range product.Options {
		o := Option{
			Name:          opt.Name,
			SelectedValue: current[opt.Name],
			Values:        make([]OptionValue, 0, len(opt.Values)),
		}

		for _, value := range opt.Values {
			candidate := make(map[string]string, len(current))
			for k, v := range current {
				candidate[k] = v
			}
			candidate[opt.Name] = value

			match := findVariant(product, candidate)
			q := selectionValues(candidate)

			o.Values = append(o.Values, OptionValue{
				Value:       value,
				IsActive:    current[opt.Name] == value,
				Exists:      match != nil,
				IsAvailable: match != nil && match.AvailableForSale,
				Query:       q,
				To:          productURL(product.Handle, q),
			})
		}
		options = append(options, o)
	}
	return options
}

func findVariant(product *domain.Product, selection map[string]string) *domain.Variant {
	if len(selection) != len(product.Options) {
		return nil
	}
	for i := range product.Variants {
		v := &product.Variants[i]
		matched := true
		for _, opt := range product.Options {
			got, ok := v.OptionValue(opt.Name)
			if !ok || got != selection[opt.Name] {
				matched = false
				break
			}
		}
		if matched {
			return v
		}
	}
	return nil
}

func lookup(selection map[string]string, name string) (string, bool) {
	if v, ok := selection[name]; ok {
		return v, true
	}
	for k, v := range selection {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// canonicalValue returns the option's own spelling of v, or v unchanged
func canonicalValue(opt domain.ProductOption, v string) string {
	for _, allowed := range opt.Values {
		if strings.EqualFold(allowed, v) {
			return allowed
		}
	}
	return v
}

func selectionValues(selection map[string]string) url.Values {
	q := url.Values{}
	for k, v := range selection {
		q.Set(k, v)
	}
	return q
}

func productURL(handle string, q url.Values) string {
	u := "/products/" + url.PathEscape(handle)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
