package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/evbt/fml/formula"
	"github.com/evbt/fml/internal/log"
	"github.com/evbt/fml/parser"
	"github.com/evbt/fml/symbols"
)

var RenderCmd = &cobra.Command{
	Use:          "render \"formula\"",
	Short:        "Parse a formula and render it for a target",
	RunE:         runRender,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	renderTarget  *string
	renderTypes   *bool
	renderLevel   *int
	renderSymbols *symbolFlags
)

func init() {
	renderTarget = RenderCmd.Flags().StringP("target", "t", "plain", "render target: plain|terminal|tex|htmq")
	renderTypes = RenderCmd.Flags().Bool("types", false, "annotate symbols with their resolved types")
	renderLevel = RenderCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	renderSymbols = addSymbolFlags(RenderCmd)
}

// symbolFlags holds one command's symbol declarations. Each command
// registers its own holder so their flag sets stay independent.
type symbolFlags struct {
	vars   *[]string
	consts *[]string
	sets   *[]string
}

func addSymbolFlags(c *cobra.Command) *symbolFlags {
	return &symbolFlags{
		vars:   c.Flags().StringSlice("vars", nil, "known variable names, name or name:TYPE"),
		consts: c.Flags().StringSlice("consts", nil, "known constant names, name or name:TYPE"),
		sets:   c.Flags().StringSlice("sets", nil, "known carrier set names"),
	}
}

// symbolTable seeds a table so the context-sensitive lexer can classify
// free identifiers.
func (sf *symbolFlags) symbolTable() *symbols.SymbolTable {
	st := symbols.NewSymbolTable("cli")
	for _, spec := range *sf.vars {
		name, typ, hasType := strings.Cut(spec, ":")
		v := symbols.NewVariable(name, "")
		if hasType {
			v.SetType(symbols.NewType(typ))
		}
		st.AddVariable(v)
	}
	for _, spec := range *sf.consts {
		name, typ, hasType := strings.Cut(spec, ":")
		c := symbols.NewConstant(name, "")
		if hasType {
			c.SetType(symbols.NewType(typ))
		}
		st.AddConstant(c)
	}
	st.AddSets(*sf.sets...)
	return st
}

func runRender(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*renderLevel))

	target, err := formula.ParseRenderTarget(*renderTarget)
	if err != nil {
		return errors.Wrap(err, "bad --target")
	}

	st := renderSymbols.symbolTable()
	f, errs := parser.Parse(args[0], st)
	if f == nil {
		return parseFailure(errs)
	}

	if *renderTypes {
		fmt.Println(f.ToStringWithTypes(st))
		return nil
	}
	c := formula.NewCanvas()
	c.SetRenderTarget(target)
	fmt.Println(f.ToString(c))
	return nil
}
