// Package cli implements the abl-cortex command line interface. Every
// command opens the workspace through the service layer; the grammar is a
// Go plugin loaded at startup, so the binary itself stays grammar-agnostic.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/abl-cortex/internal/service"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

var (
	workspaceFlag string
	grammarFlag   string
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "abl-cortex",
	Short: "Language intelligence for OpenEdge ABL codebases",
	Long: `abl-cortex analyzes OpenEdge ABL source files: diagnostics, go-to-definition,
symbol listings and include graphs, with include files and database schema
dumps taken into account. It runs as a one-shot CLI or as an MCP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", ".", "workspace root directory")
	rootCmd.PersistentFlags().StringVar(&grammarFlag, "grammar", "", "path to the ABL grammar plugin (.so)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	viper.BindPFlag("grammar", rootCmd.PersistentFlags().Lookup("grammar"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// openService builds the workspace service the command flags describe.
// Without --grammar the service runs degraded: file and config handling work,
// tree-dependent features return empty results.
func openService() (*service.Service, error) {
	var parser syntax.Parser
	if grammarFlag != "" {
		p, err := loadGrammar(grammarFlag)
		if err != nil {
			return nil, fmt.Errorf("loading grammar: %w", err)
		}
		parser = p
	} else if verbose {
		fmt.Fprintln(os.Stderr, "No grammar plugin given, syntax-based features are disabled")
	}

	svc, err := service.Open(workspaceFlag, parser)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "Workspace:", svc.Root)
	}
	return svc, nil
}
