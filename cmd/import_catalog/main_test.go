package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"batchcalc/internal/config"
	"batchcalc/internal/db"
	"batchcalc/models"
)

func testDatabaseConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{URL: "sqlite://" + filepath.Join(t.TempDir(), "batch.db")}
}

func TestImportIntoUsesBuiltInCatalog(t *testing.T) {
	ctx := context.Background()
	database, err := db.Configure(testDatabaseConfig(t))
	if err != nil {
		t.Fatalf("configure database: %v", err)
	}

	var out bytes.Buffer
	if err := importInto(ctx, database, "", &out); err != nil {
		t.Fatalf("importInto returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 7 components, 8 chemicals and 13 batch links from built-in catalog") {
		t.Fatalf("unexpected summary %q", out.String())
	}

	var links int64
	if err := database.Model(&models.Batch{}).Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 13 {
		t.Fatalf("expected 13 links, got %d", links)
	}
}

func TestImportIntoReadsCatalogFile(t *testing.T) {
	ctx := context.Background()
	database, err := db.Configure(testDatabaseConfig(t))
	if err != nil {
		t.Fatalf("configure database: %v", err)
	}

	path := filepath.Join(t.TempDir(), "silica.yaml")
	doc := `
components:
  - name: Silica
    formula: SiO2
  - name: Water
    formula: H2O
chemicals:
  - name: Water
    formula: H2O
    kind: reactant
    links: [{component: H2O, coefficient: 1}]
  - name: Colloidal silica
    formula: SiO2
    kind: mixture
    concentration: 0.3
    links: [{component: SiO2, coefficient: 0.3}, {component: H2O, coefficient: 0.7}]
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	var out bytes.Buffer
	if err := importInto(ctx, database, path, &out); err != nil {
		t.Fatalf("importInto returned error: %v", err)
	}
	if !strings.Contains(out.String(), "2 chemicals") || !strings.Contains(out.String(), "silica.yaml") {
		t.Fatalf("unexpected summary %q", out.String())
	}
}

func TestImportIntoRejectsMissingFile(t *testing.T) {
	database, err := db.Configure(testDatabaseConfig(t))
	if err != nil {
		t.Fatalf("configure database: %v", err)
	}
	err = importInto(context.Background(), database, filepath.Join(t.TempDir(), "missing.yaml"), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "locate catalog") {
		t.Fatalf("expected locate error, got %v", err)
	}
}
