package anim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
)

// warnOutput receives diagnostic warnings. Replaced in tests.
var warnOutput io.Writer = os.Stderr

// SetWarningOutput redirects engine diagnostics. Passing nil restores
// stderr.
func SetWarningOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	warnOutput = w
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(warnOutput, "[anim] warning: "+format+"\n", args...)
}

// maxSuggestDistance bounds how far a misspelling may be from a candidate
// before Suggest gives up.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to name by edit distance, ignoring
// case, or "" when nothing is close enough.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// DidYouMean formats a suggestion suffix for diagnostics.
func DidYouMean(name string, candidates []string) string {
	if s := Suggest(name, candidates); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}
