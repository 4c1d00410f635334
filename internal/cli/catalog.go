package cli

import (
	"github.com/MrSnakeDoc/sidenav/internal/sitemap"
	"github.com/MrSnakeDoc/sidenav/internal/sources/navfile"
)

// loadCatalog reads the sitemap file, or returns the built-in brands when
// no file is given.
func loadCatalog(file string) (*sitemap.Catalog, error) {
	if file == "" {
		return sitemap.DefaultCatalog(), nil
	}
	doc, _, err := navfile.NewLoader(file).Load()
	if err != nil {
		return nil, err
	}
	mapper, err := navfile.NewMapper()
	if err != nil {
		return nil, err
	}
	return mapper.MapCatalog(doc)
}
