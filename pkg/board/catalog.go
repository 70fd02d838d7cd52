package board

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

var (
	catalogOnce     sync.Once
	catalogProfiles []Profile
	catalogErr      error
)

// CatalogProfiles returns the profiles of the embedded catalog, the board
// variants that ship as YAML rather than as compiled-in profiles.
func CatalogProfiles() ([]Profile, error) {
	catalogOnce.Do(func() {
		catalogProfiles, catalogErr = loadCatalog()
	})
	return catalogProfiles, catalogErr
}

func loadCatalog() ([]Profile, error) {
	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Profile
	for _, name := range names {
		data, err := catalogFS.ReadFile(path.Join("catalog", name))
		if err != nil {
			return nil, err
		}
		profiles, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
		out = append(out, profiles...)
	}
	return out, nil
}

// Catalog returns a registry holding the built-in and the catalog profiles.
func Catalog() (*Registry, error) {
	profiles, err := CatalogProfiles()
	if err != nil {
		return nil, err
	}
	r := Builtins()
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}
	return r, nil
}
