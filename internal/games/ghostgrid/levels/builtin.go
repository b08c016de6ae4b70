package levels

import "embed"

//go:embed builtin/*.yaml builtin/*.toml
var builtinFS embed.FS
