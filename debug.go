package cadence

import (
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/cadence/anim"
)

// warnOutput receives "[cadence] warning:" diagnostics.
var warnOutput io.Writer = os.Stderr

// SetWarningOutput redirects diagnostics from cadence and its animation
// engine. Passing nil restores stderr.
func SetWarningOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	warnOutput = w
	anim.SetWarningOutput(w)
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(warnOutput, "[cadence] warning: "+format+"\n", args...)
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation or as an animation target. In release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("cadence debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		warnf("node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
