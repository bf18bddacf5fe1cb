package messages

import (
	"embed"
	"io/fs"
)

//go:embed locales/*
var embeddedLocales embed.FS

// EmbeddedFS returns the bundled catalogs (en, fr, de). Pass it to LoadFS to
// get a ready to use Bundle.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
