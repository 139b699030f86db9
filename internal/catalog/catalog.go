// Package catalog loads component and chemical catalogs from YAML and imports
// them into the database.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"batchcalc/internal/batch"
	"batchcalc/internal/molwt"
)

//go:embed zeolite.yaml
var defaultCatalog []byte

// Catalog is the document form of a set of components, chemicals and their links.
type Catalog struct {
	Categories []Category  `yaml:"categories"`
	Components []Component `yaml:"components"`
	Chemicals  []Chemical  `yaml:"chemicals"`
}

type Category struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"full_name"`
}

type Component struct {
	Name      string  `yaml:"name"`
	Formula   string  `yaml:"formula"`
	MolWt     float64 `yaml:"molwt"`
	ShortName string  `yaml:"short_name"`
	Category  string  `yaml:"category"`
}

type Chemical struct {
	Name          string   `yaml:"name"`
	Formula       string   `yaml:"formula"`
	MolWt         float64  `yaml:"molwt"`
	ShortName     string   `yaml:"short_name"`
	Kind          string   `yaml:"kind"`
	Concentration *float64 `yaml:"concentration"`
	CAS           string   `yaml:"cas"`
	Density       *float64 `yaml:"density"`
	PK            *float64 `yaml:"pk"`
	Smiles        string   `yaml:"smiles"`
	PhysicalForm  string   `yaml:"physical_form"`
	Electrolyte   string   `yaml:"electrolyte"`
	Links         []Link   `yaml:"links"`
}

// Link refers to a component by formula.
type Link struct {
	Component   string  `yaml:"component"`
	Coefficient float64 `yaml:"coefficient"`
	Reaction    string  `yaml:"reaction"`
}

// Default returns the built-in zeolite catalog.
func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML catalog, fills in missing molecular weights and
// concentrations, and validates it.
func Decode(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := cat.normalize(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) normalize() error {
	for i := range c.Components {
		comp := &c.Components[i]
		comp.Formula = strings.TrimSpace(comp.Formula)
		if comp.MolWt == 0 {
			weight, err := molwt.Weight(comp.Formula)
			if err != nil {
				return fmt.Errorf("component %q: %w", comp.Name, err)
			}
			comp.MolWt = weight
		}
	}
	for i := range c.Chemicals {
		chem := &c.Chemicals[i]
		chem.Formula = strings.TrimSpace(chem.Formula)
		if chem.MolWt == 0 {
			weight, err := molwt.Weight(chem.Formula)
			if err != nil {
				return fmt.Errorf("chemical %q: %w", chem.Name, err)
			}
			chem.MolWt = weight
		}
		if chem.Concentration == nil {
			one := 1.0
			chem.Concentration = &one
		}
	}
	return nil
}

// Validate checks the catalog for records the calculator cannot use.
func (c *Catalog) Validate() error {
	categories := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.Name] = struct{}{}
	}

	components := make(map[string]Component, len(c.Components))
	for _, comp := range c.Components {
		if comp.Formula == "" {
			return fmt.Errorf("component %q: formula is required", comp.Name)
		}
		if _, dup := components[comp.Formula]; dup {
			return fmt.Errorf("component formula %q is defined twice", comp.Formula)
		}
		if comp.MolWt <= 0 {
			return fmt.Errorf("component %q: molecular weight must be positive", comp.Name)
		}
		if comp.Category != "" {
			if _, ok := categories[comp.Category]; !ok {
				return fmt.Errorf("component %q: unknown category %q", comp.Name, comp.Category)
			}
		}
		components[comp.Formula] = comp
	}

	for _, chem := range c.Chemicals {
		kind, err := batch.ParseKind(chem.Kind)
		if err != nil {
			return fmt.Errorf("chemical %q: %w", chem.Name, err)
		}
		if chem.MolWt <= 0 {
			return fmt.Errorf("chemical %q: molecular weight must be positive", chem.Name)
		}
		if chem.Concentration != nil {
			if conc := *chem.Concentration; conc <= 0 || conc > 1 {
				return fmt.Errorf("chemical %q: concentration %g outside (0,1]", chem.Name, conc)
			}
		}
		if len(chem.Links) == 0 {
			return fmt.Errorf("chemical %q: at least one component link is required", chem.Name)
		}
		if kind == batch.Solution && len(chem.Links) > 2 {
			return fmt.Errorf("chemical %q: %w", chem.Name, &batch.TooManyLinksError{Count: len(chem.Links)})
		}
		sum := 0.0
		for _, link := range chem.Links {
			if _, ok := components[link.Component]; !ok {
				return fmt.Errorf("chemical %q: unknown component %q", chem.Name, link.Component)
			}
			sum += link.Coefficient
		}
		if kind == batch.Mixture && math.Abs(sum-1.0) > batch.FractionTolerance {
			return fmt.Errorf("chemical %q: %w", chem.Name, &batch.FractionSumError{Sum: sum})
		}
	}
	return nil
}
