package query

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"

	"github.com/mrops-br/storefront-api/internal/domain"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 250

	ParamFirst       = "first"
	ParamLast        = "last"
	ParamStartCursor = "startCursor"
	ParamEndCursor   = "endCursor"
	ParamCursor      = "cursor"
	ParamDirection   = "direction"

	maxCursorLength = 1024
)

// Direction of a paginated request
type Direction string

const (
	Forward  Direction = "next"
	Backward Direction = "previous"
)

// Page is a resolved pagination request. Cursor is the raw upstream cursor.
type Page struct {
	Direction Direction
	Cursor    string
	PageSize  int
}

// Scope fingerprints the (handle, filters, sort) combination cursors belong to
func Scope(handle string, f FilterDescriptor, s SortKey) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%t", handle, f.Values().Encode(), s.Key, s.Reverse)
	return fmt.Sprintf("%08x", h.Sum32())
}

// EncodeCursor binds an upstream cursor to a scope
func EncodeCursor(scope, raw string) string {
	if raw == "" {
		return ""
	}
	return scope + ":" + raw
}

// DecodeCursor returns the upstream cursor of a token issued for scope
func DecodeCursor(scope, token string) (string, bool) {
	if token == "" || len(token) > maxCursorLength {
		return "", false
	}
	prefix, raw, ok := strings.Cut(token, ":")
	if !ok || prefix != scope || raw == "" {
		return "", false
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return "", false
	}
	return raw, true
}

// ResolvePage reads pagination parameters. A forward cursor wins over a backward one;
// cursors from another scope or malformed ones are ignored, as are non-positive sizes.
func ResolvePage(params url.Values, pageSize int, scope string) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	forwardToken := params.Get(ParamEndCursor)
	backwardToken := params.Get(ParamStartCursor)
	if cursor := params.Get(ParamCursor); cursor != "" {
		if Direction(params.Get(ParamDirection)) == Backward {
			if backwardToken == "" {
				backwardToken = cursor
			}
		} else if forwardToken == "" {
			forwardToken = cursor
		}
	}

	if raw, ok := DecodeCursor(scope, forwardToken); ok {
		return Page{Direction: Forward, Cursor: raw, PageSize: sizeParam(params.Get(ParamFirst), pageSize)}
	}
	if raw, ok := DecodeCursor(scope, backwardToken); ok {
		return Page{Direction: Backward, Cursor: raw, PageSize: sizeParam(params.Get(ParamLast), pageSize)}
	}
	return Page{Direction: Forward, PageSize: sizeParam(params.Get(ParamFirst), pageSize)}
}

func sizeParam(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return min(n, MaxPageSize)
}

// Apply copies the page window into an upstream query
func (p Page) Apply(q *domain.CollectionQuery) {
	switch p.Direction {
	case Backward:
		q.Last = p.PageSize
		q.Before = p.Cursor
	default:
		q.First = p.PageSize
		q.After = p.Cursor
	}
}
