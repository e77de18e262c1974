package upstream

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// The backend is inconsistent about envelope shapes: a collection may come
// back as {results: [...]}, {<entity_plural>: [...]} or a bare array, and a
// single object as {<entity>: {...}} or the object directly. Every read
// goes through these helpers with the candidate keys for its endpoint, so
// no resource module re-derives the fallback chain (and none silently
// regresses to an empty list when the backend changes shape).

// UnmarshalList decodes a collection payload into out, trying the candidate
// keys in order and falling back to a bare array.
func UnmarshalList(body []byte, out interface{}, keys ...string) error {
	if raw, ok := findKey(body, keys); ok {
		return errors.Wrap(json.Unmarshal(raw, out), "unwrapping list envelope")
	}
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return errors.Wrap(json.Unmarshal(body, out), "unmarshalling bare list")
	}
	return errors.New("no known list envelope shape matched")
}

// UnmarshalObject decodes a single-object payload into out, trying the
// candidate keys in order and falling back to the body itself.
func UnmarshalObject(body []byte, out interface{}, keys ...string) error {
	if raw, ok := findKey(body, keys); ok {
		return errors.Wrap(json.Unmarshal(raw, out), "unwrapping object envelope")
	}
	return errors.Wrap(json.Unmarshal(body, out), "unmarshalling bare object")
}

// PageMeta is the pagination block of a server-paginated collection.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// UnmarshalPage decodes a server-paginated collection. Endpoints that do
// not paginate yield Total=len(items), TotalPages=1.
func UnmarshalPage(body []byte, out interface{}, keys ...string) (PageMeta, error) {
	var meta PageMeta

	raw, ok := findKey(body, keys)
	if !ok {
		if err := UnmarshalList(body, out, keys...); err != nil {
			return meta, err
		}
		meta.Total = countItems(body)
		meta.TotalPages = 1
		meta.Page = 1
		return meta, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return meta, errors.Wrap(err, "unwrapping paginated list")
	}

	var envelope map[string]json.RawMessage
	_ = json.Unmarshal(body, &envelope)
	meta.Total = intField(envelope, "total", "count")
	meta.TotalPages = intField(envelope, "total_pages", "num_pages")
	meta.Page = intField(envelope, "page", "current_page")
	meta.PageSize = intField(envelope, "page_size")
	if meta.Total == 0 {
		meta.Total = countItems(raw)
	}
	if meta.TotalPages == 0 {
		meta.TotalPages = 1
	}
	if meta.Page == 0 {
		meta.Page = 1
	}
	return meta, nil
}

func findKey(body []byte, keys []string) (json.RawMessage, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}
	for _, key := range keys {
		if raw, ok := envelope[key]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return raw, true
		}
	}
	return nil, false
}

func intField(envelope map[string]json.RawMessage, keys ...string) int {
	for _, key := range keys {
		if raw, ok := envelope[key]; ok {
			var n int
			if json.Unmarshal(raw, &n) == nil {
				return n
			}
		}
	}
	return 0
}

func countItems(raw json.RawMessage) int {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		return len(items)
	}
	return 0
}
