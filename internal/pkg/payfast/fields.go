package payfast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Field is a single key/value pair from a notification body.
type Field struct {
	Key   string
	Value string
}

// OrderedFields is a notification payload with its original field order
// intact. The ITN signature is computed over fields in received order, so the
// payload must never pass through an unordered map.
type OrderedFields []Field

// Get returns the value of the first field with the given key, or "".
func (f OrderedFields) Get(key string) string {
	for _, field := range f {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Has reports whether a field with the given key is present.
func (f OrderedFields) Has(key string) bool {
	for _, field := range f {
		if field.Key == key {
			return true
		}
	}
	return false
}

// Append adds a field, preserving call order. Used by the redirect builder
// where the sender defines the field order.
func (f OrderedFields) Append(key, value string) OrderedFields {
	return append(f, Field{Key: key, Value: value})
}

// ParseNotificationBody decodes an ITN request body into ordered fields.
// PayFast posts application/x-www-form-urlencoded, but some proxy setups
// re-wrap the payload as JSON, so a JSON object is tried first and the body
// is re-parsed as form data when that fails.
func ParseNotificationBody(body []byte) (OrderedFields, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return OrderedFields{}, nil
	}

	if trimmed[0] == '{' {
		if fields, err := parseJSONObject(trimmed); err == nil {
			return fields, nil
		}
	}
	return parseFormEncoded(string(trimmed))
}

// parseJSONObject walks a flat JSON object with the decoder token stream so
// key order survives. Non-string scalars are formatted back to their literal
// representation; nested values are rejected.
func parseJSONObject(body []byte) (OrderedFields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("payfast: body is not a JSON object")
	}

	var fields OrderedFields
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("payfast: unexpected JSON key token %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var value string
		switch v := valTok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = fmt.Sprintf("%t", v)
		case nil:
			value = ""
		default:
			return nil, fmt.Errorf("payfast: nested JSON value for field %q", key)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// parseFormEncoded splits a urlencoded body into ordered pairs. net/url's
// ParseQuery decodes into an unordered map, which would destroy the field
// order the signature depends on, so the pairs are walked by hand.
func parseFormEncoded(body string) (OrderedFields, error) {
	var fields OrderedFields
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		key := pair
		value := ""
		if idx := strings.Index(pair, "="); idx >= 0 {
			key = pair[:idx]
			value = pair[idx+1:]
		}
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("payfast: bad field key %q: %w", key, err)
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("payfast: bad value for field %q: %w", decodedKey, err)
		}
		fields = append(fields, Field{Key: decodedKey, Value: decodedValue})
	}
	return fields, nil
}
