package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static
var content embed.FS

// StaticFS returns the embedded frontend rooted at the static directory.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		return nil, fmt.Errorf("rooting embedded assets: %w", err)
	}
	return sub, nil
}
