// Package catalog reads the syrup, soda and add-in reference data.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"pop-lab/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var bundled embed.FS

const DefaultPath = "data/catalog.yaml"

var validate = validator.New()

type document struct {
	Syrups   []domain.CatalogItem   `yaml:"syrups" validate:"dive"`
	Sodas    []domain.CatalogItem   `yaml:"sodas" validate:"dive"`
	AddIns   []domain.CatalogItem   `yaml:"addins" validate:"dive"`
	Featured []domain.FeaturedDrink `yaml:"featured"`
}

// Loader is responsible for reading catalog documents from a filesystem.
type Loader struct {
	fs fs.FS
}

func NewLoader(f fs.FS) *Loader {
	return &Loader{fs: f}
}

// LoadDefault reads the catalog bundled into the binary.
func LoadDefault() (*domain.Catalog, error) {
	return NewLoader(bundled).Load(DefaultPath)
}

// LoadFile reads a catalog document from disk, e.g. an operator supplied override.
func LoadFile(path string) (*domain.Catalog, error) {
	return NewLoader(os.DirFS(filepath.Dir(path))).Load(filepath.Base(path))
}

// Load parses and validates the document at path. An empty category is reported
// as errors.ErrDegenerateCatalog so that startup fails instead of the first request.
func (l *Loader) Load(path string) (*domain.Catalog, error) {
	data, err := fs.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var doc document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err = validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}

	return domain.NewCatalog(doc.Syrups, doc.Sodas, doc.AddIns, doc.Featured...)
}
