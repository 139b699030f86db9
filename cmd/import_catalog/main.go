package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"batchcalc/internal/batch"
	"batchcalc/internal/catalog"
	"batchcalc/internal/config"
	"batchcalc/internal/db"
	"batchcalc/internal/repository"
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		path = cfg.Catalog.Path
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return importInto(ctx, database, path, os.Stdout)
}

// importInto loads the catalog at path, or the built-in one when path is
// empty, writes it to database and verifies every chemical it holds.
func importInto(ctx context.Context, database *gorm.DB, path string, out io.Writer) error {
	var (
		cat    *catalog.Catalog
		source = "built-in catalog"
		err    error
	)
	if strings.TrimSpace(path) == "" {
		cat, err = catalog.Default()
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Errorf("locate catalog: %w", statErr)
		}
		source = filepath.Base(path)
		cat, err = catalog.Load(path)
	}
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	summary, err := catalog.Import(ctx, database, cat)
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}

	repo := repository.New(database)
	calc := batch.NewCalculator(repo)
	chemicals, err := repo.ListChemicals(ctx, nil)
	if err != nil {
		return fmt.Errorf("list chemicals: %w", err)
	}
	for _, chem := range chemicals {
		if err := calc.VerifyChemical(ctx, chem); err != nil {
			return fmt.Errorf("verify chemical %q: %w", chem.Name, err)
		}
	}

	fmt.Fprintf(out, "Imported %d components, %d chemicals and %d batch links from %s\n",
		summary.Components, summary.Chemicals, summary.Links, source)
	return nil
}
