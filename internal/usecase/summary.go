package usecase

import (
	"fmt"
	"strings"
)

// ComposeSummary assembles the single-line prompt summary: branch name,
// divergence markers, staged and unstaged change counts, joined with single
// spaces and wrapped in brackets. Empty segments are dropped.
func ComposeSummary(
	branch string,
	div Divergence,
	index, worktree ChangeCounters,
	mode RenderMode,
	sym Symbols,
) string {
	segments := []string{
		FormatColor(branch, ColorBlue, mode),
		divergenceSegment(div.Ahead, sym.Ahead, ColorGreen, mode),
		divergenceSegment(div.Behind, sym.Behind, ColorRed, mode),
		countSegment(index, "", ColorGreen, mode),
		countSegment(worktree, "| ", ColorRed, mode),
	}

	kept := segments[:0]
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}

	return FormatColor(sym.OpenBracket, ColorYellow, mode) +
		strings.Join(kept, " ") +
		FormatColor(sym.CloseBracket, ColorYellow, mode)
}

// divergenceSegment renders "<symbol>N", or nothing when the count is zero.
func divergenceSegment(count int, symbol string, color Color, mode RenderMode) string {
	if count <= 0 {
		return ""
	}
	return FormatColor(fmt.Sprintf("%s%d", symbol, count), color, mode)
}

// countSegment renders one side's counters as "+n ~m -d" behind a yellow
// prefix, or nothing when all counters are zero.
func countSegment(c ChangeCounters, prefix string, color Color, mode RenderMode) string {
	if !c.Any() {
		return ""
	}
	body := fmt.Sprintf("+%d ~%d -%d", c.New, c.Modified, c.Deleted)
	if prefix == "" {
		return FormatColor(body, color, mode)
	}
	return FormatColor(prefix, ColorYellow, mode) + FormatColor(body, color, mode)
}
