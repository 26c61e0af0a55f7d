package value

import "strconv"

// Display renders v as a short human-readable string for diagnostic
// messages and CLI output. It is not a serialization format — use
// ToJSON for that.
func Display(v Value) string {
	switch t := v.(type) {
	case nullValue:
		return "null"
	case Bool:
		if bool(t) {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case Str:
		return strconv.Quote(string(t))
	case *Array:
		out := "["
		for i, e := range t.Elements {
			if i > 0 {
				out += ", "
			}
			out += Display(e)
		}
		return out + "]"
	case *Object:
		out := "{"
		for i, k := range t.Keys() {
			if i > 0 {
				out += ", "
			}
			val, _ := t.Get(k)
			out += strconv.Quote(k) + ": " + Display(val)
		}
		return out + "}"
	default:
		return "<unknown>"
	}
}
