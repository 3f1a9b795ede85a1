// Command smoothline smooths hand-drawn routes.
//
// It reads routes from GeoJSON, GPX or encoded-polyline files, or serves the
// same transformations over HTTP for map clients.
package main

import (
	"fmt"
	"os"

	"honnef.co/go/smooth/internal/config"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd(config.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "smoothline:", err)
		os.Exit(1)
	}
}
