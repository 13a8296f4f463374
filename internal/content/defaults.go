package content

import _ "embed"

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// Default returns the embedded catalog. It panics on a parse error because
// a broken embedded catalog is a build defect, not a runtime condition.
func Default() *Catalog {
	cat, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic("content: embedded catalog invalid: " + err.Error())
	}
	return cat
}
