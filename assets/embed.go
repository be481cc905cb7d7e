package assets

import "embed"

//go:embed teams.json
var CatalogFS embed.FS
