package sdk

import (
	"strings"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
)

// ListParams narrows a collection request. Zero values are left out of the query.
type ListParams struct {
	Page     int
	PageSize int
	Sort     string
	Populate string
	Filters  []query.Filter
	// Match overrides the endpoint's default filter operator when set.
	Match *query.Match
}

// WithFilter returns a copy of p with one more filter appended.
func (p ListParams) WithFilter(field string, value any) ListParams {
	p.Filters = append(append([]query.Filter(nil), p.Filters...), query.Filter{Field: field, Value: value})
	return p
}

func (p ListParams) builder(defaultMatch query.Match) *query.Builder {
	match := defaultMatch
	if p.Match != nil {
		match = *p.Match
	}
	return query.New().
		Page(p.Page).
		PageSize(p.PageSize).
		Sort(p.Sort).
		Populate(p.Populate).
		Match(match).
		Filters(p.Filters...)
}

// NGOFilter holds the directory search fields.
type NGOFilter struct {
	Search   string
	Cause    string
	Location string
	// Verified narrows to verified NGOs only when true.
	Verified bool
}

// Filters renders f in the order the directory applies them.
func (f NGOFilter) Filters() []query.Filter {
	var out []query.Filter
	out = appendText(out, "name", f.Search)
	out = appendText(out, "cause", f.Cause)
	out = appendText(out, "location", f.Location)
	if f.Verified {
		out = append(out, query.Filter{Field: "verified", Value: true})
	}
	return out
}

// OpportunityFilter holds the volunteer search fields.
type OpportunityFilter struct {
	Search string
	Type   OpportunityType
	Skill  string
	// Urgent narrows to urgent opportunities only when true.
	Urgent bool
}

// Filters renders f in the order the volunteer page applies them.
func (f OpportunityFilter) Filters() []query.Filter {
	var out []query.Filter
	out = appendText(out, "title", f.Search)
	out = appendText(out, "type", string(f.Type))
	out = appendText(out, "skills", f.Skill)
	if f.Urgent {
		out = append(out, query.Filter{Field: "urgent", Value: true})
	}
	return out
}

// appendText skips blanks and the UI's "All" sentinel.
func appendText(out []query.Filter, field, value string) []query.Filter {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return out
	}
	return append(out, query.Filter{Field: field, Value: value})
}
