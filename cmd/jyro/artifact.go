// The "artifact" command group inspects precompiled .jyroc artifacts.
// "diff" reports the unified diff between two artifacts' embedded
// source text, parsed back into structured hunks via go-diff the same
// way the teacher's diff package does: hand-roll the edit computation,
// then lean on go-diff only to parse the resulting unified text.
package main

import (
	"fmt"
	"os"

	godiff "github.com/sourcegraph/go-diff/diff"
	"github.com/spf13/cobra"

	"github.com/meschsystems/jyro/artifact"
)

var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Inspect precompiled jyro artifacts",
}

var artifactDiffCmd = &cobra.Command{
	Use:   "diff <a.jyroc> <b.jyroc>",
	Short: "Show the unified diff between two artifacts' embedded source",
	Args:  cobra.ExactArgs(2),
	RunE:  runArtifactDiff,
}

func init() {
	artifactCmd.AddCommand(artifactDiffCmd)
}

func runArtifactDiff(cmd *cobra.Command, args []string) error {
	aPath, bPath := args[0], args[1]

	a, err := loadArtifact(aPath)
	if err != nil {
		return err
	}
	b, err := loadArtifact(bPath)
	if err != nil {
		return err
	}

	if a.Source == b.Source {
		fmt.Println("no differences")
		return nil
	}

	text := unifiedDiff(aPath, bPath, a.Source, b.Source)
	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return fmt.Errorf("jyro: parsing generated diff: %w", err)
	}

	for _, fd := range fileDiffs {
		for _, h := range fd.Hunks {
			fmt.Printf("@@ -%d,%d +%d,%d @@\n", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
			printHunkBody(h.Body)
		}
	}
	return nil
}

func printHunkBody(body []byte) {
	lines := splitKeepingLines(string(body))
	for _, line := range lines {
		switch {
		case len(line) > 0 && line[0] == '+':
			fmt.Print(colorize(color, styles.Added, line))
		case len(line) > 0 && line[0] == '-':
			fmt.Print(colorize(color, styles.Removed, line))
		default:
			fmt.Print(line)
		}
	}
}

func loadArtifact(path string) (*artifact.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jyro: reading %s: %w", path, err)
	}
	art, err := artifact.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("jyro: decoding %s: %w", path, err)
	}
	return art, nil
}
