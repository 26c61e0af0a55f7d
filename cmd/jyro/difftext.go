package main

import (
	"fmt"
	"strings"
)

// unifiedDiff produces a minimal unified-diff text between oldText and
// newText under the given labels, using a straightforward LCS line
// diff — adequate for the artifact sources this command compares,
// which are single scripts rather than large files. Grounded on the
// teacher's diff package: it too hand-rolls the edit computation
// (Myers/LCS) and only hands the result to go-diff for parsing
// afterward, rather than asking go-diff to generate the diff itself.
func unifiedDiff(oldLabel, newLabel, oldText, newText string) string {
	oldLines := splitKeepingLines(oldText)
	newLines := splitKeepingLines(newText)
	ops := lcsDiff(oldLines, newLines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n", oldLabel)
	fmt.Fprintf(&out, "+++ %s\n", newLabel)

	oldLine, newLine := 1, 1
	for idx := 0; idx < len(ops); {
		if ops[idx].kind == diffEqual {
			oldLine++
			newLine++
			idx++
			continue
		}

		hunkOldStart, hunkNewStart := oldLine, newLine
		var body strings.Builder
		oldCount, newCount := 0, 0
		for idx < len(ops) && ops[idx].kind != diffEqual {
			switch ops[idx].kind {
			case diffDelete:
				body.WriteString("-" + ops[idx].text)
				oldLine++
				oldCount++
			case diffInsert:
				body.WriteString("+" + ops[idx].text)
				newLine++
				newCount++
			}
			idx++
		}
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", hunkOldStart, oldCount, hunkNewStart, newCount)
		out.WriteString(body.String())
	}
	return out.String()
}

type diffOpKind int

const (
	diffEqual diffOpKind = iota
	diffDelete
	diffInsert
)

type diffOp struct {
	kind diffOpKind
	text string
}

func splitKeepingLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:]+"\n")
	}
	return lines
}

// lcsDiff computes a line-level edit script via dynamic-programming
// LCS, the same approach the teacher's computeEdits falls back to
// without its large-file guard (artifact sources are small).
func lcsDiff(a, b []string) []diffOp {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			ops = append(ops, diffOp{diffEqual, a[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, diffOp{diffDelete, a[i]})
			i++
		default:
			ops = append(ops, diffOp{diffInsert, b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		ops = append(ops, diffOp{diffDelete, a[i]})
	}
	for ; j < n; j++ {
		ops = append(ops, diffOp{diffInsert, b[j]})
	}
	return ops
}
