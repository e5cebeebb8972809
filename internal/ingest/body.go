package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeBody splits a request body into raw items.
// The body may be a single JSON value or an array of them; an empty array is rejected.
func DecodeBody(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyBody
	}
	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if trimmed[0] != '[' {
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	return items, nil
}
