package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/evbt/fml/fmlerr"
	"github.com/evbt/fml/formula"
	"github.com/evbt/fml/internal/log"
	"github.com/evbt/fml/parser"
)

var CheckCmd = &cobra.Command{
	Use:          "check \"formula\"",
	Short:        "Check that a formula parses, and list its free identifiers",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	checkLevel   *int
	checkSymbols *symbolFlags
)

func init() {
	checkLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	checkSymbols = addSymbolFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLevel))

	st := checkSymbols.symbolTable()
	f, errs := parser.Parse(args[0], st)
	if f == nil {
		return parseFailure(errs)
	}

	free := formula.FreeIdentifiers(f)
	if len(free) > 0 {
		fmt.Printf("free identifiers: %s\n", strings.Join(free, " "))
	}
	fmt.Println("ok:", f)
	return nil
}

func parseFailure(errs *fmlerr.Errors) error {
	sb := &strings.Builder{}
	for _, e := range errs.Errors() {
		sb.WriteString("\n")
		sb.WriteString(fmlerr.FormatWithCode(e))
	}
	return errors.Errorf("formula does not parse:%s", sb.String())
}
