package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResolvesItsOwnVarFlag(t *testing.T) {
	root := &cobra.Command{Use: "fml"}
	root.AddCommand(CheckCmd, RenderCmd)
	root.SetArgs([]string{"check", "--vars", "counter", "counter + 1"})

	require.NoError(t, root.Execute())
}

func TestSymbolFlagsDoNotLeakBetweenCommands(t *testing.T) {
	require.NoError(t, RenderCmd.Flags().Set("vars", "speed"))

	err := runCheck(CheckCmd, []string{"speed + 1"})
	assert.ErrorContains(t, err, "unknown symbol")
}

func TestSymbolFlagsBuildTypedTable(t *testing.T) {
	sf := &symbolFlags{
		vars:   &[]string{"velocity:ℤ"},
		consts: &[]string{"limit"},
		sets:   &[]string{"S"},
	}
	st := sf.symbolTable()

	assert.True(t, st.IsVariable("velocity"))
	assert.True(t, st.IsConstant("limit"))
	assert.True(t, st.IsSet("S"))
	typ, ok := st.TypeOf("velocity")
	assert.True(t, ok)
	assert.Equal(t, "ℤ", typ)
}
