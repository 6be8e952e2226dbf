package sdk

import (
	"bytes"
	"encoding/json"
)

// The content API has shipped two entity shapes:
//
//	legacy:    {"id": 1, "attributes": {"name": "...", "ngo": {"data": {...}}}}
//	flattened: {"id": 1, "documentId": "...", "name": "...", "ngo": {...}}
//
// normalizeData accepts either and always produces the flattened shape, so the
// rest of the SDK only ever decodes one form. Relations wrapped as {"data": X}
// are unwrapped at any depth.
func normalizeData(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("null"), nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(flattenData(v))
}

// NormalizeEntity flattens a single raw entity. It is exported for callers
// that fetch payloads outside the typed resource clients.
func NormalizeEntity(raw json.RawMessage) (json.RawMessage, error) {
	return normalizeData(raw)
}

func flattenData(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return flattenEntity(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = flattenData(item)
		}
		return out
	}
	return v
}

func flattenEntity(obj map[string]any) map[string]any {
	attrs, legacy := legacyAttributes(obj)
	if !legacy {
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			out[k] = flattenField(v)
		}
		return out
	}
	out := make(map[string]any, len(attrs)+2)
	for k, v := range attrs {
		out[k] = flattenField(v)
	}
	for k, v := range obj {
		if k == "attributes" {
			continue
		}
		if _, taken := out[k]; !taken || k == "id" {
			out[k] = flattenField(v)
		}
	}
	return out
}

// legacyAttributes reports whether obj is a legacy entity: an object-valued
// "attributes" next to nothing but id, documentId and meta. A flattened entity
// may have a real field named attributes, which must be kept.
func legacyAttributes(obj map[string]any) (map[string]any, bool) {
	attrs, ok := obj["attributes"].(map[string]any)
	if !ok {
		return nil, false
	}
	for k := range obj {
		switch k {
		case "attributes", "id", "documentId", "meta":
		default:
			return nil, false
		}
	}
	return attrs, true
}

func flattenField(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if data, ok := relationData(x); ok {
			return flattenData(data)
		}
		return flattenEntity(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = flattenField(item)
		}
		return out
	}
	return v
}

// relationData reports whether obj is a nested envelope, {"data": X} with an
// optional "meta", where X is null, an object or a list.
func relationData(obj map[string]any) (any, bool) {
	data, ok := obj["data"]
	if !ok {
		return nil, false
	}
	for k := range obj {
		if k != "data" && k != "meta" {
			return nil, false
		}
	}
	switch data.(type) {
	case nil, map[string]any, []any:
		return data, true
	}
	return nil, false
}
