// Package templates exposes the embedded config payloads.
package templates

import (
	"embed"
)

//go:embed assets
var assets embed.FS

// Read returns the embedded template with the given name.
func Read(name string) ([]byte, error) {
	return assets.ReadFile("assets/" + name)
}
