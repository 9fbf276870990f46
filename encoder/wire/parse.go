package wire

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ParseJSON parses a JSON document into a wire Object, preserving key order.
// Numbers are kept as json.Number so re-marshalling does not lose precision
// or reformat literals.
func ParseJSON(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("wire: document root is %T, expected an object", v)
	}
	return obj, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("wire: malformed JSON: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool, or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("wire: malformed JSON object: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("wire: object key is %T, expected string", keyTok)
			}
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, fmt.Errorf("wire: unterminated object: %w", err)
		}
		return obj, nil

	case '[':
		arr := make([]any, 0)
		for dec.More() {
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, fmt.Errorf("wire: unterminated array: %w", err)
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("wire: unexpected delimiter %q", delim)
	}
}
