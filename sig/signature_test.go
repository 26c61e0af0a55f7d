package sig

import (
	"testing"

	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

func TestMinMaxArityRequiredAndOptional(t *testing.T) {
	s := Signature{
		Name: "Pad",
		Params: []Param{
			{Name: "s", Type: Of(value.TypeString), Required: true},
			{Name: "width", Type: Of(value.TypeNumber), Required: true},
			{Name: "char", Type: Of(value.TypeString), Required: false},
		},
	}
	require.Equal(t, 2, s.MinArity())
	require.Equal(t, 3, s.MaxArity())
}

func TestCheckArityBounds(t *testing.T) {
	s := Signature{Params: []Param{
		{Name: "a", Required: true},
		{Name: "b", Required: false},
	}}

	ok, tooFew, tooMany := s.CheckArity(0)
	require.False(t, ok)
	require.True(t, tooFew)
	require.False(t, tooMany)

	ok, tooFew, tooMany = s.CheckArity(1)
	require.True(t, ok)
	require.False(t, tooFew)
	require.False(t, tooMany)

	ok, tooFew, tooMany = s.CheckArity(2)
	require.True(t, ok)

	ok, tooFew, tooMany = s.CheckArity(3)
	require.False(t, ok)
	require.False(t, tooFew)
	require.True(t, tooMany)
}

func TestNoParamsHasZeroArityRange(t *testing.T) {
	s := Signature{Name: "Now"}
	require.Equal(t, 0, s.MinArity())
	require.Equal(t, 0, s.MaxArity())
	ok, _, _ := s.CheckArity(0)
	require.True(t, ok)
}

func TestLambdaParamIndexes(t *testing.T) {
	s := Signature{Params: []Param{
		{Name: "arr", Type: Of(value.TypeArray), Required: true},
		{Name: "fn", Type: Lambda, Required: true},
	}}
	require.Equal(t, []int{1}, s.LambdaParamIndexes())
}

func TestLambdaParamIndexesEmptyWhenNone(t *testing.T) {
	s := Signature{Params: []Param{{Name: "x", Type: Any, Required: true}}}
	require.Empty(t, s.LambdaParamIndexes())
}

func TestParamTypeString(t *testing.T) {
	require.Equal(t, "Lambda", Lambda.String())
	require.Equal(t, "Any", Any.String())
	require.Equal(t, "Number", Of(value.TypeNumber).String())
}
