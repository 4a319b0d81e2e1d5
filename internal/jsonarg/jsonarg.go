// Package jsonarg decodes arguments that callers may send either as
// structured JSON or as a JSON string containing serialized JSON. A value
// that parses neither way is a validation failure, never a silent default.
package jsonarg

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errEmpty = errors.New("empty json argument")

// Normalize returns the structured form of raw: a plain JSON value passes
// through, a JSON string is unwrapped and its contents must themselves be
// valid JSON.
func Normalize(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmpty
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, err
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 {
			return nil, errEmpty
		}
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("malformed json argument")
	}
	return trimmed, nil
}

// Decode normalizes raw and unmarshals the structured form into dst.
func Decode(raw json.RawMessage, dst interface{}) error {
	normalized, err := Normalize(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(normalized, dst)
}
