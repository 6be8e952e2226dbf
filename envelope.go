package sdk

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Envelope is the {data, meta} wrapper around every content API response.
// Single lookups use Envelope[*T]: a nil Data means not found. Collection
// lookups use Envelope[[]T]: Data is never nil.
type Envelope[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries response metadata. Pagination is set only on collection endpoints.
type Meta struct {
	Pagination *PageInfo `json:"pagination,omitempty"`
}

// PageInfo describes one page of a collection. Page is 1-indexed.
type PageInfo struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Found reports whether a single-entity lookup returned an entity. It is
// meaningful for pointer, slice and map payloads; other payloads always report true.
func (e Envelope[T]) Found() bool {
	rv := reflect.ValueOf(&e.Data).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

// Pagination returns the page metadata, or a zero PageInfo when absent.
func (e Envelope[T]) Pagination() PageInfo {
	if e.Meta.Pagination == nil {
		return PageInfo{}
	}
	return *e.Meta.Pagination
}

// Consistent reports whether PageCount equals ceil(Total / PageSize).
func (p PageInfo) Consistent() bool {
	if p.PageSize <= 0 {
		return p.PageCount == 0
	}
	return p.PageCount == int(math.Ceil(float64(p.Total)/float64(p.PageSize)))
}

// HasNext reports whether another page follows this one.
func (p PageInfo) HasNext() bool {
	return p.Page < p.PageCount
}

// Summary renders "showing <shown> of <total>".
func (p PageInfo) Summary(shown int) string {
	return fmt.Sprintf("showing %d of %d", shown, p.Total)
}

// rawEnvelope is the wire form before normalization.
type rawEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// decodeEnvelope flattens raw.Data and unmarshals it into T. Nil slices are
// replaced with empty ones so collection callers never see a nil list.
func decodeEnvelope[T any](raw rawEnvelope) (Envelope[T], error) {
	out := Envelope[T]{Meta: raw.Meta}
	flat, err := normalizeData(raw.Data)
	if err != nil {
		return Envelope[T]{}, err
	}
	if err := json.Unmarshal(flat, &out.Data); err != nil {
		return Envelope[T]{}, err
	}
	rv := reflect.ValueOf(&out.Data).Elem()
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}
	return out, nil
}
