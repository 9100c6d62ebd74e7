// Package ui embeds the templates and static assets so the binary is
// self-contained.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
