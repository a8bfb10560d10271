// Package web embeds the landing and admin pages so the binary is
// self-contained and can run from any working directory.
package web

import "embed"

// FS contains the static assets embedded at compile time.
//
//go:embed static
var FS embed.FS
