// Package query builds the bracketed query strings the MyanmarCares content API
// expects for pagination, sorting, relation population and filtering.
//
// The builder is pure: the same calls always produce the same string, and a
// value that cannot be rendered as a scalar is skipped rather than failing the
// whole build.
package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Match selects how filter values are compared on the server.
type Match int

const (
	// MatchExact emits filters[<field>]=<value>.
	MatchExact Match = iota
	// MatchContains emits filters[<field>][$containsi]=<value>, a
	// case-insensitive substring match.
	MatchContains
)

// OpContainsI is the server operator for case-insensitive substring matches.
const OpContainsI = "$containsi"

// Operator returns the operator segment for m, or "" for exact matches.
func (m Match) Operator() string {
	if m == MatchContains {
		return OpContainsI
	}
	return ""
}

func (m Match) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// Filter is a single field constraint. Field may address a relation with a dot
// path ("ngo.name"). Op overrides the builder's Match when set.
type Filter struct {
	Field string
	Op    string
	Value any
}

type param struct {
	key   string
	value any
}

// Builder assembles a query string. The zero value is not usable; call New.
type Builder struct {
	raw      []param
	page     int
	pageSize int
	sort     string
	populate string
	match    Match
	filters  []Filter
}

// New returns an empty builder using exact filter matching.
func New() *Builder {
	return &Builder{}
}

// Page sets the 1-indexed page. Values below 1 are omitted from the output.
func (b *Builder) Page(page int) *Builder {
	b.page = page
	return b
}

// PageSize sets the page size. Values below 1 are omitted from the output.
func (b *Builder) PageSize(size int) *Builder {
	b.pageSize = size
	return b
}

// Sort sets the sort expression, e.g. "date:asc" or "name:asc,createdAt:desc".
func (b *Builder) Sort(sort string) *Builder {
	b.sort = sort
	return b
}

// Populate sets the relation population hint ("*", "image", "image,ngo").
func (b *Builder) Populate(populate string) *Builder {
	b.populate = populate
	return b
}

// Match sets the operator used for filters added without an explicit Op.
func (b *Builder) Match(m Match) *Builder {
	b.match = m
	return b
}

// Filter appends a constraint on field using the builder's Match.
func (b *Builder) Filter(field string, value any) *Builder {
	return b.FilterOp(field, "", value)
}

// FilterOp appends a constraint with an explicit operator such as "$eq" or "$gte".
func (b *Builder) FilterOp(field, op string, value any) *Builder {
	if strings.TrimSpace(field) == "" {
		return b
	}
	b.filters = append(b.filters, Filter{Field: field, Op: op, Value: value})
	return b
}

// Filters appends constraints in the order given.
func (b *Builder) Filters(filters ...Filter) *Builder {
	for _, f := range filters {
		b.FilterOp(f.Field, f.Op, f.Value)
	}
	return b
}

// FiltersFrom appends every entry of m. Go maps carry no order, so keys are
// added in lexical order to keep the output deterministic.
func (b *Builder) FiltersFrom(m map[string]any) *Builder {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.Filter(k, m[k])
	}
	return b
}

// Set adds a raw top-level parameter. Raw parameters are emitted first, in the
// order they were set.
func (b *Builder) Set(key string, value any) *Builder {
	if key == "" {
		return b
	}
	b.raw = append(b.raw, param{key: key, value: value})
	return b
}

// Clone returns an independent copy of b.
func (b *Builder) Clone() *Builder {
	if b == nil {
		return New()
	}
	out := *b
	out.raw = append([]param(nil), b.raw...)
	out.filters = append([]Filter(nil), b.filters...)
	return &out
}

// FilterList returns a copy of the filters added so far.
func (b *Builder) FilterList() []Filter {
	if b == nil {
		return nil
	}
	return append([]Filter(nil), b.filters...)
}

// Encode renders the query string without a leading '?'. Keys keep literal
// brackets; values are percent-encoded.
func (b *Builder) Encode() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	add := func(key, value string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
	}
	for _, p := range b.raw {
		if v, ok := FormatValue(p.value); ok {
			add(escapeSegment(p.key), v)
		}
	}
	if b.page > 0 {
		add("pagination[page]", strconv.Itoa(b.page))
	}
	if b.pageSize > 0 {
		add("pagination[pageSize]", strconv.Itoa(b.pageSize))
	}
	if b.sort != "" {
		add("sort", b.sort)
	}
	if b.populate != "" {
		add("populate", b.populate)
	}
	for _, f := range b.filters {
		v, ok := FormatValue(f.Value)
		if !ok {
			continue
		}
		op := f.Op
		if op == "" {
			op = b.match.Operator()
		}
		add(filterKey(f.Field, op), v)
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (b *Builder) String() string {
	return b.Encode()
}

// filterKey writes field segments fully escaped so brackets inside a field
// name cannot end a segment early. The operator is written as is.
func filterKey(field, op string) string {
	var sb strings.Builder
	sb.WriteString("filters")
	for _, seg := range strings.Split(field, ".") {
		sb.WriteByte('[')
		sb.WriteString(url.QueryEscape(seg))
		sb.WriteByte(']')
	}
	if op != "" {
		sb.WriteByte('[')
		sb.WriteString(op)
		sb.WriteByte(']')
	}
	return sb.String()
}

// escapeSegment percent-encodes a key fragment while leaving brackets intact.
func escapeSegment(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "%5B", "[")
	return strings.ReplaceAll(escaped, "%5D", "]")
}
