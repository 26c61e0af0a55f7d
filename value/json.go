package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ToJSON serializes v into the JSON text representation used by the
// standard library's JSON utility builtins and by the CLI and HTTP API
// when they emit a run's result. Non-finite numbers (NaN/Infinity) have no
// JSON representation and are rejected, matching §8 invariant 1's
// "when v contains only JSON-representable values" caveat.
func ToJSON(v Value) ([]byte, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

func toGeneric(v Value) (any, error) {
	switch t := v.(type) {
	case nullValue:
		return nil, nil
	case Bool:
		return bool(t), nil
	case Number:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("value: number %v has no JSON representation", f)
		}
		return f, nil
	case Str:
		return string(t), nil
	case *Array:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			g, err := toGeneric(e)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case *Object:
		// encoding/json sorts map keys alphabetically, which would lose
		// insertion order on the wire; FromJSON restores whatever order
		// the decoder below produces (also alphabetical for map[string]any),
		// so round-tripping through ToJSON/FromJSON is order-preserving
		// only to the extent encoding/json's own map handling is. Scripts
		// that need order-stable JSON should prefer the object as-built.
		m := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			g, err := toGeneric(val)
			if err != nil {
				return nil, err
			}
			m[k] = g
		}
		return m, nil
	default:
		return nil, fmt.Errorf("value: unknown kind for JSON encoding")
	}
}

// FromJSON parses JSON text into the Value universe: objects become
// Objects (keys in the order json.Decoder emits them via a streaming
// token walk, i.e. source order, not the alphabetical order a plain
// map[string]any unmarshal would give), arrays become Arrays, and
// primitives map straightforwardly.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case string:
		return Str(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := NewArray()
			for dec.More() {
				elemTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				elem, err := decodeJSONToken(dec, elemTok)
				if err != nil {
					return nil, err
				}
				arr.Elements = append(arr.Elements, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("value: expected object key, got %v", keyTok)
				}
				valTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := decodeJSONToken(dec, valTok)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("value: unexpected JSON token %v", tok)
}
