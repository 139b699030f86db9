package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"batchcalc/internal/batch"
	applog "batchcalc/internal/log"
	"batchcalc/models"
)

// Summary counts the records written by Import.
type Summary struct {
	Components int
	Chemicals  int
	Links      int
}

// Import writes the catalog into db inside a single transaction. Components are
// matched by formula and chemicals by name; existing records are updated and
// their links replaced.
func Import(ctx context.Context, db *gorm.DB, cat *Catalog) (Summary, error) {
	if db == nil {
		return Summary{}, gorm.ErrInvalidDB
	}
	if cat == nil {
		return Summary{}, errors.New("catalog: nil catalog")
	}

	var summary Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]uint, len(cat.Categories))
		for _, c := range cat.Categories {
			record := models.Category{Name: c.Name}
			if err := tx.Where(models.Category{Name: c.Name}).
				Assign(models.Category{FullName: c.FullName}).
				FirstOrCreate(&record).Error; err != nil {
				return fmt.Errorf("upsert category %q: %w", c.Name, err)
			}
			categoryIDs[c.Name] = record.ID
		}

		componentIDs := make(map[string]uint, len(cat.Components))
		for _, c := range cat.Components {
			id, err := upsertComponent(tx, c, categoryIDs)
			if err != nil {
				return err
			}
			componentIDs[c.Formula] = id
			summary.Components++
		}

		for _, c := range cat.Chemicals {
			links, err := upsertChemical(tx, c, componentIDs)
			if err != nil {
				return err
			}
			summary.Chemicals++
			summary.Links += links
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	applog.Info(ctx, "catalog imported",
		"components", summary.Components,
		"chemicals", summary.Chemicals,
		"links", summary.Links,
	)
	return summary, nil
}

func upsertComponent(tx *gorm.DB, c Component, categoryIDs map[string]uint) (uint, error) {
	var categoryID *uint
	if id, ok := categoryIDs[c.Category]; ok {
		categoryID = &id
	}

	var existing models.Component
	err := tx.Where("formula = ?", c.Formula).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"name":        c.Name,
			"molwt":       c.MolWt,
			"short_name":  c.ShortName,
			"category_id": categoryID,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return 0, fmt.Errorf("update component %q: %w", c.Formula, err)
		}
		return existing.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.Component{
			Name:       c.Name,
			Formula:    c.Formula,
			MolWt:      c.MolWt,
			ShortName:  c.ShortName,
			CategoryID: categoryID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return 0, fmt.Errorf("create component %q: %w", c.Formula, err)
		}
		return record.ID, nil
	default:
		return 0, fmt.Errorf("find component %q: %w", c.Formula, err)
	}
}

func upsertChemical(tx *gorm.DB, c Chemical, componentIDs map[string]uint) (int, error) {
	kind, err := batch.ParseKind(c.Kind)
	if err != nil {
		return 0, fmt.Errorf("chemical %q: %w", c.Name, err)
	}
	kindRecord := models.Kind{Name: kind.String()}
	if err := tx.Where(models.Kind{Name: kind.String()}).FirstOrCreate(&kindRecord).Error; err != nil {
		return 0, fmt.Errorf("upsert kind %q: %w", kind, err)
	}

	concentration := 1.0
	if c.Concentration != nil {
		concentration = *c.Concentration
	}

	record := models.Chemical{
		Name:          c.Name,
		Formula:       c.Formula,
		MolWt:         c.MolWt,
		ShortName:     c.ShortName,
		Concentration: concentration,
		CAS:           c.CAS,
		Density:       c.Density,
		PK:            c.PK,
		Smiles:        c.Smiles,
		KindID:        kindRecord.ID,
	}

	if form := strings.TrimSpace(c.PhysicalForm); form != "" {
		formRecord := models.PhysicalForm{Form: form}
		if err := tx.Where(models.PhysicalForm{Form: form}).FirstOrCreate(&formRecord).Error; err != nil {
			return 0, fmt.Errorf("upsert physical form %q: %w", form, err)
		}
		record.PhysicalFormID = &formRecord.ID
	}
	if name := strings.TrimSpace(c.Electrolyte); name != "" {
		electrolyte := models.Electrolyte{Name: name}
		if err := tx.Where(models.Electrolyte{Name: name}).FirstOrCreate(&electrolyte).Error; err != nil {
			return 0, fmt.Errorf("upsert electrolyte %q: %w", name, err)
		}
		record.ElectrolyteID = &electrolyte.ID
	}

	var existing models.Chemical
	err = tx.Where("name = ?", c.Name).First(&existing).Error
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := tx.Save(&record).Error; err != nil {
			return 0, fmt.Errorf("update chemical %q: %w", c.Name, err)
		}
		if err := tx.Unscoped().Where("chemical_id = ?", record.ID).Delete(&models.Batch{}).Error; err != nil {
			return 0, fmt.Errorf("replace links of chemical %q: %w", c.Name, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&record).Error; err != nil {
			return 0, fmt.Errorf("create chemical %q: %w", c.Name, err)
		}
	default:
		return 0, fmt.Errorf("find chemical %q: %w", c.Name, err)
	}

	reactions := map[string]uint{}
	for _, link := range c.Links {
		componentID, ok := componentIDs[link.Component]
		if !ok {
			return 0, fmt.Errorf("chemical %q: unknown component %q", c.Name, link.Component)
		}
		row := models.Batch{
			ChemicalID:  record.ID,
			ComponentID: componentID,
			Coefficient: link.Coefficient,
		}
		if text := strings.TrimSpace(link.Reaction); text != "" {
			id, ok := reactions[text]
			if !ok {
				reaction := models.Reaction{Reaction: text}
				if err := tx.Where(models.Reaction{Reaction: text}).FirstOrCreate(&reaction).Error; err != nil {
					return 0, fmt.Errorf("upsert reaction %q: %w", text, err)
				}
				id = reaction.ID
				reactions[text] = id
			}
			row.ReactionID = &id
		}
		if err := tx.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("create link %s -> %s: %w", c.Name, link.Component, err)
		}
	}
	return len(c.Links), nil
}
