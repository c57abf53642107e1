// Package tracer provides a function to dump the current layout tree,
// which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nichevision/flyingsaucer-sub000/html/boxes"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewWriterTracer writes to [out].
func NewWriterTracer(out io.Writer) Tracer { return Tracer{out: out} }

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

// DumpTree prints the geometry of [box] and its descendants,
// one line per box, after the [context] line.
func (t Tracer) DumpTree(box boxes.Box, context string) {
	fmt.Fprintln(t.out, context)

	var printer func(box boxes.Box, indent int)
	printer = func(box boxes.Box, indent int) {
		bf := box.Box()
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		fmt.Fprintf(t.out, "%s %s: %d %d %d %d", box.Type(), bf.ElementTag(), bf.X, bf.Y, bf.Width(), bf.Height)
		if box, ok := box.(*boxes.InlineText); ok {
			fmt.Fprintf(t.out, " %q", box.Text)
		}
		fmt.Fprintln(t.out)

		for _, child := range box.Children() {
			printer(child, indent+1)
		}
	}

	printer(box, 0)

	fmt.Fprintln(t.out)
}
