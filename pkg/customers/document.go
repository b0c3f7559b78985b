package customers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is a decoded JSON response body together with the request that produced it.
// Raw keeps the server's compacted bytes so key order survives printing.
type Document struct {
	Method     string
	URL        string
	StatusCode int
	Raw        json.RawMessage
	Value      any
}

func decodeDocument(body []byte) (Document, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Document{}, fmt.Errorf("decode response: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return Document{}, fmt.Errorf("compact response: %w", err)
	}
	return Document{Raw: buf.Bytes(), Value: v}, nil
}

// String returns the compact JSON form of the document.
func (d Document) String() string { return string(d.Raw) }

// Object returns the document as a JSON object, if it is one.
func (d Document) Object() (map[string]any, bool) {
	m, ok := d.Value.(map[string]any)
	return m, ok
}

// Array returns the document as a JSON array, if it is one.
func (d Document) Array() ([]any, bool) {
	a, ok := d.Value.([]any)
	return a, ok
}
