// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

// Package validators implements the per-operation payload validation rules
// of the API. Every operation has an explicit allowlist of permitted field
// names; a payload containing any key outside that set is rejected before a
// single field rule runs. Validation always happens before persistence, so a
// failed validation never leaves a partial write behind.
package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// payload is a decoded JSON object with its keys preserved. Decoding into a
// map of raw messages keeps the original JSON types intact, so a string
// where a boolean belongs is rejected instead of coerced.
type payload map[string]json.RawMessage

// decodePayload parses the body into a payload and enforces the allowlist.
// Unknown keys are reported as a [ValidationError] naming each offending key.
func decodePayload(body []byte, allowed ...string) (payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, ErrInvalidJSON
	}

	verr := newValidationError()
	for key := range p {
		if !contains(allowed, key) {
			verr.add(key, "field is not permitted for this operation")
		}
	}

	return p, verr.orNil()
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// unmarshalField decodes a single raw field into dest, reporting a type
// mismatch (e.g. a quoted "true" for a boolean field) as an error.
func unmarshalField(p payload, field string, dest any) error {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("field %q has wrong type: %w", field, err)
	}
	return nil
}
