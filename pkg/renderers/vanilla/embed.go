package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName    = "fishlist-vanilla.css"
	RuntimeScriptName = "fishlist-toggle.js"

	// ThemeStylesheetKey is looked up through the theme AssetURL resolver.
	ThemeStylesheetKey = "fishlist.stylesheet"
)

// TemplatesFS exposes the embedded template bundle (fish, list and page
// templates) for callers that want to copy or extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded CSS/JS bundle so callers can serve it over
// HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
