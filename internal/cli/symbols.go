package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/abl-cortex/internal/service"
)

var symbolsPrefix string

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols FILE",
	Short: "List the definition symbols of a file",
	Long: `Symbols lists variables, functions, procedures, temp-tables, buffers and
streams defined by the file and its include files.

Examples:
  abl-cortex symbols src/order-entry.p
  abl-cortex symbols src/order-entry.p --prefix cust`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringVarP(&symbolsPrefix, "prefix", "p", "", "case-insensitive name prefix filter")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	return printSymbols(cmd.Context(), svc, os.Stdout, args[0], symbolsPrefix)
}

func printSymbols(ctx context.Context, svc *service.Service, out io.Writer, file, prefix string) error {
	items, err := svc.Symbols(ctx, file, prefix)
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
