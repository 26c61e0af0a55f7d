// Package sig defines the function-signature shape shared by builtins
// and host-provided functions: an ordered parameter list, a declared
// return type, and the min/max arity the linker checks call sites
// against (§3's "Function signature" and §4.6's standard-library
// shape).
package sig

import "github.com/meschsystems/jyro/value"

// ParamType is the type a parameter accepts. It extends value.TypeHint
// with Lambda, since a closure is not itself a Value variant but is a
// legal parameter type (§3).
type ParamType struct {
	Hint       value.TypeHint
	IsLambda   bool
}

// Any accepts any Value.
var Any = ParamType{Hint: value.TypeAny}

// Lambda accepts a lambda/closure handle rather than a Value.
var Lambda = ParamType{IsLambda: true}

// Of builds a ParamType constrained to a single value.TypeHint.
func Of(hint value.TypeHint) ParamType {
	return ParamType{Hint: hint}
}

func (p ParamType) String() string {
	if p.IsLambda {
		return "Lambda"
	}
	return p.Hint.String()
}

// Param describes one formal parameter.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
}

// Signature is the (name, parameters, return type) triple the linker
// checks call sites against and the registry keys functions by name.
type Signature struct {
	Name       string
	Params     []Param
	ReturnType ParamType
}

// MinArity is the number of required parameters.
func (s Signature) MinArity() int {
	n := 0
	for _, p := range s.Params {
		if p.Required {
			n++
		}
	}
	return n
}

// MaxArity is the total parameter count (required + optional).
func (s Signature) MaxArity() int {
	return len(s.Params)
}

// CheckArity reports whether n arguments satisfy this signature's
// [min, max] range. tooFew/tooMany distinguish which bound was missed,
// for the linker's TooFewArguments/TooManyArguments diagnostics.
func (s Signature) CheckArity(n int) (ok bool, tooFew bool, tooMany bool) {
	min, max := s.MinArity(), s.MaxArity()
	if n < min {
		return false, true, false
	}
	if n > max {
		return false, false, true
	}
	return true, false, false
}

// LambdaParamIndexes returns the zero-based indexes of parameters typed
// Lambda, which the linker enforces must be lambda literals at the call
// site (§4.5 point 3).
func (s Signature) LambdaParamIndexes() []int {
	var out []int
	for i, p := range s.Params {
		if p.Type.IsLambda {
			out = append(out, i)
		}
	}
	return out
}
