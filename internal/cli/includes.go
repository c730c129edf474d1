package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// includesCmd represents the includes command
var includesCmd = &cobra.Command{
	Use:   "includes FILE",
	Short: "Print the include tree of a file",
	Long: `Includes renders the transitive include tree of a file, indented by depth.
Includes that cannot be resolved on the propath are marked unresolved;
repeated includes are expanded once.

Example:
  abl-cortex includes src/order-entry.p`,
	Args: cobra.ExactArgs(1),
	RunE: runIncludes,
}

func init() {
	rootCmd.AddCommand(includesCmd)
}

func runIncludes(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	lines, err := svc.IncludeTree(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
