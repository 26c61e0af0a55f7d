package value

// Equal implements the deep structural equality used by "==", "!=", the
// switch statement's case matching, and the standard library's Diff and
// DeepEqual utilities. Two Null values are always equal — the universe
// commits to null == null even though a caller could in principle ask
// for an asymmetric variant; jyro never exposes one.
func Equal(a, b Value) bool {
	ak, bk := KindOf(a), KindOf(b)
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindBoolean:
		return bool(a.(Bool)) == bool(b.(Bool))
	case KindNumber:
		return float64(a.(Number)) == float64(b.(Number))
	case KindString:
		return string(a.(Str)) == string(b.(Str))
	case KindArray:
		aa, bb := a.(*Array), b.(*Array)
		if aa.Len() != bb.Len() {
			return false
		}
		for i := range aa.Elements {
			if !Equal(aa.Elements[i], bb.Elements[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ao, bo := a.(*Object), b.(*Object)
		if ao.Len() != bo.Len() {
			return false
		}
		for _, k := range ao.keys {
			av, _ := ao.Get(k)
			bv, ok := bo.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
