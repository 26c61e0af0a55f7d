package value

// Truthy implements the total truthiness mapping used by conditionals and
// by the short-circuiting "and"/"or" operators. It is defined for every
// Kind and never raises.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nullValue:
		return false
	case Bool:
		return bool(t)
	case Number:
		return float64(t) != 0
	case Str:
		return len(t) != 0
	case *Array:
		return t.Len() != 0
	case *Object:
		return t.Len() != 0
	default:
		return false
	}
}
