// Gob support for the Value universe, used by the artifact package to
// serialize a validated AST's embedded Literal values (and, via ast's
// own gob registration, the AST nodes that hold them) without going
// through the lossy JSON round trip ToJSON/FromJSON perform elsewhere.
package value

import (
	"bytes"
	"encoding/gob"
)

func init() {
	gob.Register(nullValue{})
	gob.Register(Bool(false))
	gob.Register(Number(0))
	gob.Register(Str(""))
	gob.Register(&Array{})
	gob.Register(&Object{})
}

// objectGob is Object's exported-field stand-in: Object keeps its
// insertion-order bookkeeping in unexported fields, which gob cannot see
// directly, so GobEncode/GobDecode marshal through this shape instead.
type objectGob struct {
	Keys   []string
	Values []Value
}

func (o *Object) GobEncode() ([]byte, error) {
	g := objectGob{Keys: o.keys, Values: make([]Value, len(o.keys))}
	for i, k := range o.keys {
		g.Values[i] = o.values[k]
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) GobDecode(data []byte) error {
	var g objectGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	o.keys = g.Keys
	o.values = make(map[string]Value, len(g.Keys))
	for i, k := range g.Keys {
		o.values[k] = g.Values[i]
	}
	return nil
}
