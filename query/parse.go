package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Parse reads a query string produced by Encode back into a Builder. Filter
// values come back as strings; unknown top-level keys are kept as raw
// parameters in their original order.
func Parse(raw string) (*Builder, error) {
	b := New()
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return b, nil
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("query: invalid key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("query: invalid value for %q: %w", key, err)
		}
		switch {
		case key == "pagination[page]":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("query: invalid page %q", value)
			}
			b.Page(n)
		case key == "pagination[pageSize]":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("query: invalid page size %q", value)
			}
			b.PageSize(n)
		case key == "sort":
			b.Sort(value)
		case key == "populate":
			b.Populate(value)
		case strings.HasPrefix(rawKey, "filters["), strings.HasPrefix(key, "filters["):
			splitKey := rawKey
			if !strings.HasPrefix(rawKey, "filters[") {
				splitKey = key
			}
			f, err := parseFilterKey(splitKey)
			if err != nil {
				return nil, err
			}
			f.Value = value
			b.filters = append(b.filters, f)
		default:
			b.Set(key, value)
		}
	}
	return b, nil
}

// parseFilterKey splits filters[a][b][$op] into Field "a.b" and Op "$op".
// Segments are unescaped after splitting, so an escaped bracket stays part of
// the field name.
func parseFilterKey(key string) (Filter, error) {
	rest := strings.TrimPrefix(key, "filters")
	var segs []string
	for rest != "" {
		if rest[0] != '[' {
			return Filter{}, fmt.Errorf("query: malformed filter key %q", key)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Filter{}, fmt.Errorf("query: unterminated filter key %q", key)
		}
		segs = append(segs, rest[1:end])
		rest = rest[end+1:]
	}
	// The operator is written literally; a field segment starting with '$'
	// arrives escaped as %24.
	var op string
	if len(segs) > 0 && strings.HasPrefix(segs[len(segs)-1], "$") {
		op = segs[len(segs)-1]
		segs = segs[:len(segs)-1]
	}
	if len(segs) == 0 {
		return Filter{}, fmt.Errorf("query: filter key %q names no field", key)
	}
	for i, seg := range segs {
		field, err := url.QueryUnescape(seg)
		if err != nil {
			return Filter{}, fmt.Errorf("query: invalid filter key %q: %w", key, err)
		}
		segs[i] = field
	}
	return Filter{Field: strings.Join(segs, "."), Op: op}, nil
}
