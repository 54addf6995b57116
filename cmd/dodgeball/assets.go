package main

import (
	"embed"
	"io/fs"
)

//go:embed assets
var embeddedAssets embed.FS

func assetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// only fails for an invalid directory name
		panic(err)
	}

	return sub
}
