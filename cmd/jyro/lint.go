package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meschsystems/jyro/pipeline"
)

var lintCmd = &cobra.Command{
	Use:   "lint <script.jyro>",
	Short: "Parse, validate, and link a script, reporting diagnostics without executing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jyro: reading %s: %w", path, err)
	}

	driver, err := pipeline.New(pipeline.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("jyro: %w", err)
	}

	_, diags, err := driver.Compile(cmd.Context(), string(source))
	if err != nil {
		return fmt.Errorf("jyro: %w", err)
	}

	printDiagnostics(os.Stdout, diags, color)
	if diags.HasErrors() {
		return fmt.Errorf("jyro: %s has errors", path)
	}
	return nil
}
