package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// signatureCmd represents the signature command
var signatureCmd = &cobra.Command{
	Use:   "signature FILE LINE COLUMN",
	Short: "Show the signature of the call at a position",
	Long: `Signature shows the signature of the function call surrounding the given
1-based line and column, with the active parameter index. The function is
looked up in the file first and then in its include files.

Example:
  abl-cortex signature src/order-entry.p 42 28`,
	Args: cobra.ExactArgs(3),
	RunE: runSignature,
}

func init() {
	rootCmd.AddCommand(signatureCmd)
}

func runSignature(cmd *cobra.Command, args []string) error {
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

	help, found, err := svc.SignatureHelp(cmd.Context(), args[0], line, column)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(os.Stdout, "No signature found")
		return nil
	}
	fmt.Fprintln(os.Stdout, help.Label)
	if help.ActiveParam >= 0 && help.ActiveParam < len(help.Parameters) {
		fmt.Fprintf(os.Stdout, "Active parameter: %s\n", help.Parameters[help.ActiveParam])
	}
	return nil
}
