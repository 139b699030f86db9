package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"batchcalc/internal/batch"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if len(cat.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cat.Categories))
	}
	if len(cat.Components) != 7 {
		t.Fatalf("expected 7 components, got %d", len(cat.Components))
	}
	if len(cat.Chemicals) != 8 {
		t.Fatalf("expected 8 chemicals, got %d", len(cat.Chemicals))
	}

	for _, comp := range cat.Components {
		if comp.MolWt <= 0 {
			t.Fatalf("component %s has no molecular weight", comp.Formula)
		}
		if comp.Formula == "(C4H12N)2O" && (comp.MolWt < 164.29 || comp.MolWt > 164.30) {
			t.Fatalf("computed molecular weight of %s = %v", comp.Formula, comp.MolWt)
		}
	}
	for _, chem := range cat.Chemicals {
		if chem.Concentration == nil {
			t.Fatalf("chemical %s has no concentration", chem.Name)
		}
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	t.Parallel()

	doc := `
components:
  - name: Silica
    formula: SiO2
chemicals:
  - name: Quartz
    formula: SiO2
    kind: reactant
    links:
      - component: SiO2
        coefficient: 1
`
	cat, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got := *cat.Chemicals[0].Concentration; got != 1 {
		t.Fatalf("default concentration = %v, want 1", got)
	}
	if got := cat.Components[0].MolWt; got < 60.08 || got > 60.09 {
		t.Fatalf("computed molecular weight = %v", got)
	}
}

func TestDecodeRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	const component = `
components:
  - name: Silica
    formula: SiO2
  - name: Water
    formula: H2O
`
	tests := []struct {
		name    string
		doc     string
		wantErr string
		target  any
	}{
		{
			name:    "unknown field",
			doc:     component + "colour: blue\n",
			wantErr: "field colour not found",
		},
		{
			name: "unknown kind",
			doc: component + `chemicals:
  - name: Gel
    formula: SiO2
    kind: suspension
    links: [{component: SiO2, coefficient: 1}]
`,
			target: new(*batch.UnsupportedKindError),
		},
		{
			name: "mixture not summing to one",
			doc: component + `chemicals:
  - name: Sol
    formula: SiO2
    kind: mixture
    links: [{component: SiO2, coefficient: 0.4}, {component: H2O, coefficient: 0.5}]
`,
			target: new(*batch.FractionSumError),
		},
		{
			name: "solution with three links",
			doc: component + `  - name: Soda
    formula: Na2O
chemicals:
  - name: Waterglass
    formula: Na2SiO3
    kind: solution
    concentration: 0.3
    links: [{component: SiO2, coefficient: 1}, {component: H2O, coefficient: 1}, {component: Na2O, coefficient: 1}]
`,
			target: new(*batch.TooManyLinksError),
		},
		{
			name: "unknown component",
			doc: component + `chemicals:
  - name: Lime
    formula: CaO
    kind: reactant
    links: [{component: CaO, coefficient: 1}]
`,
			wantErr: `unknown component "CaO"`,
		},
		{
			name: "concentration above one",
			doc: component + `chemicals:
  - name: Quartz
    formula: SiO2
    kind: reactant
    concentration: 1.5
    links: [{component: SiO2, coefficient: 1}]
`,
			wantErr: "outside (0,1]",
		},
		{
			name: "no links",
			doc: component + `chemicals:
  - name: Quartz
    formula: SiO2
    kind: reactant
`,
			wantErr: "at least one component link",
		},
		{
			name: "bad formula",
			doc: `components:
  - name: Mystery
    formula: Qq2
`,
			wantErr: "not an element symbol",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tt.wantErr)
			}
			if tt.target != nil && !errors.As(err, tt.target) {
				t.Fatalf("error %v does not match %T", err, tt.target)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, defaultCatalog, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cat.Chemicals) != 8 {
		t.Fatalf("expected 8 chemicals, got %d", len(cat.Chemicals))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
