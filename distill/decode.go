package distill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses JSON text into a Value tree, preserving object field
// order and distinguishing integers from floating-point numbers. Parse
// errors carry the byte offset of the failure.
func DecodeJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("json: offset %d: %w", dec.InputOffset(), err)
	}

	// Anything after the document is an error.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("json: offset %d: trailing data after document", dec.InputOffset())
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Text(t), nil
	case json.Number:
		return decodeNumber(t)
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// decodeNumber keeps the int/float distinction the strict-typing policy
// needs: a literal without '.', 'e' or 'E' is an Int, everything else (and
// any int64 overflow) is a Float.
func decodeNumber(n json.Number) (*Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	fields := make([]Field, 0, 8)
	seen := make(map[string]int, 8)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return Map(fields...), nil
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last one wins, position of the first is kept.
		if idx, dup := seen[name]; dup {
			fields[idx].Value = val
			continue
		}
		seen[name] = len(fields)
		fields = append(fields, Field{Name: name, Value: val})
	}
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	elems := make([]*Value, 0, 8)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return List(elems...), nil
		}
		v, err := decodeFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}
