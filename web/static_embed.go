// ABOUTME: Embeds web/static/ CSS and JS files for serving via the HTTP server.
// ABOUTME: The files are served under /static/ with the embed prefix stripped at mount time.

package web

import (
	"embed"
	"io/fs"
)

//go:embed static/*.css static/*.js
var staticEmbedFS embed.FS

// StaticFS is the embedded static tree rooted at its contents, so the
// file server resolves /static/app.js to static/app.js.
var StaticFS = mustSub(staticEmbedFS, "static")

func mustSub(f embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
