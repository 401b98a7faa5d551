// Package dtwincms provides embedded assets for the edge service.
package dtwincms

import (
	"embed"
	"io/fs"
)

//go:embed all:web/static
var assetsFS embed.FS

// StaticAssets returns the embedded asset tree rooted so that file paths
// match the /static/ URL space served by the edge.
func StaticAssets() fs.FS {
	sub, err := fs.Sub(assetsFS, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
