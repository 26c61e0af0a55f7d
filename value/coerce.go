package value

// TypeHint names the set a variable declaration may be restricted to.
// TypeAny disables the check entirely.
type TypeHint uint8

const (
	TypeAny TypeHint = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t TypeHint) String() string {
	switch t {
	case TypeAny:
		return "Any"
	case TypeNull:
		return "Null"
	case TypeBoolean:
		return "Boolean"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// kind maps a TypeHint to its corresponding Kind. Callers must not
// invoke this with TypeAny, which has no single Kind.
func (t TypeHint) kind() Kind {
	switch t {
	case TypeNull:
		return KindNull
	case TypeBoolean:
		return KindBoolean
	case TypeNumber:
		return KindNumber
	case TypeString:
		return KindString
	case TypeArray:
		return KindArray
	case TypeObject:
		return KindObject
	default:
		return KindNull
	}
}

// Matches reports whether v satisfies the given type hint. TypeAny always
// matches.
func Matches(v Value, t TypeHint) bool {
	if t == TypeAny {
		return true
	}
	return KindOf(v) == t.kind()
}

// CoerceToType is the identity function when v matches expectedType (or
// expectedType is TypeAny); otherwise it raises ReasonInvalidType naming
// varName and the expected/actual type, per §4.1 and the InvalidType
// diagnostic in §8 scenario 6.
func CoerceToType(v Value, expectedType TypeHint, varName string) (Value, error) {
	if Matches(v, expectedType) {
		return v, nil
	}
	return nil, NewOpError(ReasonInvalidType, varName, expectedType.String(), KindOf(v).String())
}
