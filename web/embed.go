// Package web embeds the shell document and static assets served by the
// portal.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// Shell document path inside Assets.
const IndexPath = "templates/index.html"

// Assets returns the embedded web tree rooted at the web directory.
func Assets() fs.FS {
	return assets
}
