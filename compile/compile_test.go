package compile

import (
	"testing"

	"github.com/meschsystems/jyro/link"
	"github.com/meschsystems/jyro/parse"
	"github.com/stretchr/testify/require"
)

func TestCompilePackagesBodyAndFunctions(t *testing.T) {
	block, err := parse.Parse(`return data.x`)
	require.NoError(t, err)

	table := link.NewBuiltinTable(nil)
	program := Compile(block, table)

	require.Equal(t, block, program.Body)
	require.Equal(t, table, program.Functions)
}

func TestCompileDoesNotMutateInputs(t *testing.T) {
	block, err := parse.Parse(`var x = 1`)
	require.NoError(t, err)
	table := link.Table{}

	program := Compile(block, table)
	require.Len(t, program.Body, 1)
	require.Empty(t, program.Functions)
}
