// Package renderer formats baskets, operations and valuations as markdown.
// Output is plain markdown text; terminal styling is the caller's concern.
package renderer

import (
	"fmt"
	"strings"
)

// mdRenderer accumulates a markdown document.
type mdRenderer struct {
	*strings.Builder
}

func newRenderer() *mdRenderer {
	return &mdRenderer{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
