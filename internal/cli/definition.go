package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/abl-cortex/internal/service"
)

// definitionCmd represents the definition command
var definitionCmd = &cobra.Command{
	Use:   "definition FILE LINE COLUMN",
	Short: "Find the definition of the symbol at a position",
	Long: `Definition resolves the symbol at the given 1-based line and column.
Preprocessor defines, buffer aliases, local definitions, functions from
include files and the database schema are searched in that order.

Example:
  abl-cortex definition src/order-entry.p 42 17`,
	Args: cobra.ExactArgs(3),
	RunE: runDefinition,
}

func init() {
	rootCmd.AddCommand(definitionCmd)
}

func runDefinition(cmd *cobra.Command, args []string) error {
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line %q: %w", args[1], err)
	}
	column, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid column %q: %w", args[2], err)
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	return printDefinition(cmd.Context(), svc, os.Stdout, args[0], line, column)
}

func printDefinition(ctx context.Context, svc *service.Service, out io.Writer, file string, line, column int) error {
	def, found, err := svc.Definition(ctx, file, line, column)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(out, "No definition found")
		return nil
	}
	fmt.Fprintf(out, "%s:%d:%d\n", def.Path, def.Range.Start.Row+1, def.Range.Start.Column+1)
	return nil
}
