package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evbt/fml/cmd"
	"github.com/evbt/fml/internal/log"
)

func main() {
	slog.SetDefault(log.DefaultLogger)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "fml [subcommand]",
	Short:        "fml\n parse and render formulas of Event-B style models",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.RenderCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}
