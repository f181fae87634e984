package menu

import _ "embed"

// embeddedMenu is the default catalog shipped with the binary. Produced by
// cmd/menu-ingest from the raw menu exports.
//
//go:embed seed/menu.json
var embeddedMenu []byte
