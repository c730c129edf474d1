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

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete FILE LINE COLUMN",
	Short: "List completion candidates at a position",
	Long: `Complete lists the completion candidates at the given 1-based line and
column: document and include symbols plus schema tables, or table fields
after a qualifier ending in a dot.

Example:
  abl-cortex complete src/order-entry.p 42 17`,
	Args: cobra.ExactArgs(3),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
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

	return printCompletions(cmd.Context(), svc, os.Stdout, args[0], line, column)
}

func printCompletions(ctx context.Context, svc *service.Service, out io.Writer, file string, line, column int) error {
	items, err := svc.Completions(ctx, file, line, column)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Detail != "" {
			fmt.Fprintf(out, "%s\t%s\t%s\n", item.Label, item.Kind, item.Detail)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", item.Label, item.Kind)
		}
	}
	return nil
}
