package value

// GetProperty implements §4.1's property read: Objects return the mapped
// value or Null when the key is absent, Null raises
// ReasonPropertyAccessOnNull, and every other Kind raises
// ReasonPropertyAccessInvalidType.
func GetProperty(v Value, key string) (Value, error) {
	switch t := v.(type) {
	case *Object:
		if val, ok := t.Get(key); ok {
			return val, nil
		}
		return Null, nil
	case nullValue:
		return nil, NewOpError(ReasonPropertyAccessOnNull, key)
	default:
		return nil, NewOpError(ReasonPropertyAccessInvalidType, KindOf(v).String(), key)
	}
}

// GetIndex implements §4.1's index read. Arrays accept an integer index
// with negative indices counting from the end (-1 = last); out-of-range
// raises ReasonIndexOutOfRange. Strings return a one-character
// substring under the same indexing rule. Objects accept a string index
// and behave as GetProperty. Null raises ReasonIndexAccessOnNull.
func GetIndex(v Value, idx Value) (Value, error) {
	switch t := v.(type) {
	case *Array:
		i, err := requireIndex(idx)
		if err != nil {
			return nil, err
		}
		resolved, ok := resolveIndex(i, t.Len())
		if !ok {
			return nil, NewOpError(ReasonIndexOutOfRange, i, t.Len())
		}
		return t.Elements[resolved], nil
	case Str:
		i, err := requireIndex(idx)
		if err != nil {
			return nil, err
		}
		runes := []rune(string(t))
		resolved, ok := resolveIndex(i, len(runes))
		if !ok {
			return nil, NewOpError(ReasonIndexOutOfRange, i, len(runes))
		}
		return Str(string(runes[resolved])), nil
	case *Object:
		key, ok := idx.(Str)
		if !ok {
			return nil, NewOpError(ReasonIndexAccessInvalidType, KindOf(idx).String())
		}
		return GetProperty(t, string(key))
	case nullValue:
		return nil, NewOpError(ReasonIndexAccessOnNull)
	default:
		return nil, NewOpError(ReasonIndexAccessInvalidType, KindOf(v).String())
	}
}

// SetProperty implements §4.1's property write. Only Objects accept a
// property write; Null and every other non-container raise
// ReasonSetPropertyOnNonObject.
func SetProperty(v Value, key string, val Value) error {
	obj, ok := v.(*Object)
	if !ok {
		return NewOpError(ReasonSetPropertyOnNonObject, KindOf(v).String(), key)
	}
	obj.Set(key, val)
	return nil
}

// SetIndex implements §4.1's index write. Arrays accept a non-negative
// integer index in range; negative indices are rejected with
// ReasonNegativeIndex (unlike reads, writes never wrap from the end) and
// out-of-range indices raise ReasonIndexOutOfRange. Objects accept a
// string index and behave as SetProperty. Anything else — including
// Null and Strings (immutable) — raises ReasonSetIndexOnNonContainer.
func SetIndex(v Value, idx Value, val Value) error {
	switch t := v.(type) {
	case *Array:
		i, err := requireIndex(idx)
		if err != nil {
			return err
		}
		if i < 0 {
			return NewOpError(ReasonNegativeIndex, i)
		}
		if i >= t.Len() {
			return NewOpError(ReasonIndexOutOfRange, i, t.Len())
		}
		t.Elements[i] = val
		return nil
	case *Object:
		key, ok := idx.(Str)
		if !ok {
			return NewOpError(ReasonIndexAccessInvalidType, KindOf(idx).String())
		}
		return SetProperty(t, string(key), val)
	default:
		return NewOpError(ReasonSetIndexOnNonContainer, KindOf(v).String())
	}
}

func requireIndex(idx Value) (int, error) {
	n, ok := idx.(Number)
	if !ok {
		return 0, NewOpError(ReasonIndexAccessInvalidType, KindOf(idx).String())
	}
	return int(float64(n)), nil
}

// resolveIndex turns a possibly-negative index into an in-bounds offset
// for a container of length n. Negative indices count from the end
// (-1 = last element). Returns ok=false when out of range.
func resolveIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
