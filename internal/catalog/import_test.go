package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"batchcalc/internal/db"
	"batchcalc/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func count(t *testing.T, database *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := database.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestImportIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDB(t)
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	summary, err := Import(ctx, database, cat)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if summary.Components != 7 || summary.Chemicals != 8 || summary.Links != 13 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := Import(ctx, database, cat); err != nil {
		t.Fatalf("second Import returned error: %v", err)
	}

	if got := count(t, database, &models.Component{}); got != 7 {
		t.Fatalf("expected 7 components after re-import, got %d", got)
	}
	if got := count(t, database, &models.Chemical{}); got != 8 {
		t.Fatalf("expected 8 chemicals after re-import, got %d", got)
	}
	if got := count(t, database, &models.Batch{}); got != 13 {
		t.Fatalf("expected 13 links after re-import, got %d", got)
	}
	if got := count(t, database, &models.Kind{}); got != 3 {
		t.Fatalf("expected 3 kinds, got %d", got)
	}
}

func TestImportUpdatesExistingRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDB(t)
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if _, err := Import(ctx, database, cat); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	conc := 0.5
	cat.Chemicals[0].Concentration = &conc
	cat.Chemicals[0].Links = cat.Chemicals[0].Links[:1]
	if _, err := Import(ctx, database, cat); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	var naoh models.Chemical
	if err := database.Where("name = ?", cat.Chemicals[0].Name).First(&naoh).Error; err != nil {
		t.Fatalf("load chemical: %v", err)
	}
	if naoh.Concentration != 0.5 {
		t.Fatalf("concentration = %v, want 0.5", naoh.Concentration)
	}
	var links int64
	database.Model(&models.Batch{}).Where("chemical_id = ?", naoh.ID).Count(&links)
	if links != 1 {
		t.Fatalf("expected links to be replaced, found %d", links)
	}
}

func TestImportRejectsNilArguments(t *testing.T) {
	t.Parallel()

	if _, err := Import(context.Background(), nil, &Catalog{}); err == nil {
		t.Fatal("expected error for nil database")
	}
	if _, err := Import(context.Background(), newTestDB(t), nil); err == nil {
		t.Fatal("expected error for nil catalog")
	}
}
