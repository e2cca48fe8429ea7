package bienestar

import "embed"

// ContentFS holds the wellbeing resource pages served under /api/resources.
//
//go:embed content/resources/*.md
var ContentFS embed.FS
