package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/abl-cortex/internal/diagnose"
	"github.com/mvp-joe/abl-cortex/internal/service"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Diagnose ABL source files",
	Long: `Check parses each file and reports syntax errors, wrong argument counts,
unknown variables and functions, and type mismatches. Symbols defined by
include files and tables from schema dumps are taken into account.

Findings print one per line as file:line:column: severity: message. The
command exits non-zero when any finding is reported.

Examples:
  abl-cortex check src/order-entry.p
  abl-cortex check --workspace /srv/app --grammar abl.so src/*.p`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	total, err := checkFiles(cmd.Context(), svc, os.Stdout, args)
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%d problem(s) found", total)
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "No problems found")
	}
	return nil
}

// checkFiles diagnoses every file and prints the findings. It returns the
// total finding count; a file that cannot be read fails the whole run.
func checkFiles(ctx context.Context, svc *service.Service, out io.Writer, files []string) (int, error) {
	total := 0
	for _, file := range files {
		diags, err := svc.Check(ctx, file)
		if err != nil {
			return total, fmt.Errorf("checking %s: %w", file, err)
		}
		for _, d := range diags {
			printDiagnostic(out, file, d)
		}
		total += len(diags)
	}
	return total, nil
}

func printDiagnostic(out io.Writer, file string, d diagnose.Diagnostic) {
	severity := "info"
	if d.Severity == diagnose.SeverityError {
		severity = "error"
	}
	fmt.Fprintf(out, "%s:%d:%d: %s: %s (%s)\n",
		file, d.Range.Start.Row+1, d.Range.Start.Column+1, severity, d.Message, d.Source)
}
