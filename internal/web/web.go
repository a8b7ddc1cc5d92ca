// Package web serves the embedded browser client.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html
var content embed.FS

func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
