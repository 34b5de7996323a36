package classify

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

//go:embed data/rules.yaml
var embeddedRulesYAML []byte

// CatalogFileName is the file the external catalog is cached under.
const CatalogFileName = "rules.catalog.yaml"

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	builtinErr     error
)

// BuiltinCatalog returns the pattern catalog embedded in the binary, parsing
// it on first use. The returned catalog is immutable and shared.
func BuiltinCatalog() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtinCatalog, builtinErr = ParseCatalog(embeddedRulesYAML)
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	return builtinCatalog, nil
}

// LoadExternalCatalog loads a synced catalog from the cache directory.
// A missing cache file is reported as fs.ErrNotExist so callers can fall back
// to the builtin catalog.
func LoadExternalCatalog(cacheDir string) (*Catalog, error) {
	if cacheDir == "" {
		return nil, errors.New("cache directory not specified")
	}
	cachedPath := filepath.Join(cacheDir, CatalogFileName)
	data, err := os.ReadFile(cachedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog cache: %w", err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog cache: %w", err)
	}
	return catalog, nil
}

// LoadCatalog resolves the active catalog: the external cache when present
// and valid, the builtin otherwise. cacheDir may be empty.
func LoadCatalog(cacheDir string) (*Catalog, error) {
	if cacheDir != "" {
		catalog, err := LoadExternalCatalog(cacheDir)
		if err == nil {
			return catalog, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return BuiltinCatalog()
}
