package value

// Pair is one key/value step yielded by ToIterable when iterating an
// Object.
type Pair struct {
	Key   string
	Value Value
}

// ToIterable implements §4.1's iteration contract: Arrays yield their
// elements in order, Objects yield {key, value} pairs in insertion
// order, and Strings yield single-character strings. Any other Kind
// raises ReasonNotIterable.
//
// The result is returned as a []Value for arrays/strings or []Pair for
// objects so that callers (the foreach lowering, Map/Where/etc.) do not
// need to re-discriminate on Kind; ForEach below unifies both into a
// single callback-driven walk for the common case of not caring about
// object keys.
func ToIterable(v Value) (elements []Value, pairs []Pair, err error) {
	switch t := v.(type) {
	case *Array:
		return append([]Value(nil), t.Elements...), nil, nil
	case Str:
		runes := []rune(string(t))
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return out, nil, nil
	case *Object:
		out := make([]Pair, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out = append(out, Pair{Key: k, Value: val})
		}
		return nil, out, nil
	default:
		return nil, nil, NewOpError(ReasonNotIterable, KindOf(v).String())
	}
}

// ForEach walks v element-by-element per ToIterable's rule, invoking fn
// once per element (for Array/String) or once per {key,value} pair
// wrapped as a two-element Object-shaped value (for Object), matching
// the language's `foreach var in collection` form where the loop
// variable is bound to the element, or to an Object literal {key, value}
// when iterating an Object.
func ForEach(v Value, fn func(item Value) error) error {
	elements, pairs, err := ToIterable(v)
	if err != nil {
		return err
	}
	for _, e := range elements {
		if err := fn(e); err != nil {
			return err
		}
	}
	for _, p := range pairs {
		entry := NewObject()
		entry.Set("key", Str(p.Key))
		entry.Set("value", p.Value)
		if err := fn(entry); err != nil {
			return err
		}
	}
	return nil
}
