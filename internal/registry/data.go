package registry

import "embed"

// Bundled team snapshot, one CSV per league.
//
//go:embed data
var teamData embed.FS
