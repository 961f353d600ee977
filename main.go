// Command wavefield renders an animated wave-line background in a window, a
// terminal or a headless framebuffer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wavefield:", err)
		os.Exit(1)
	}
}
