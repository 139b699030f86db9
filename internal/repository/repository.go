// Package repository reads components, chemicals and batch links from the database.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"batchcalc/internal/batch"
	"batchcalc/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("repository: record not found")

// Gorm implements batch.Repository on top of a gorm database.
type Gorm struct {
	db *gorm.DB
}

var _ batch.Repository = (*Gorm)(nil)

// New returns a repository reading from db.
func New(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (r *Gorm) chemicals(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Kind").
		Preload("PhysicalForm")
}

func (r *Gorm) components(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category")
}

func (r *Gorm) GetComponent(ctx context.Context, id uint) (batch.Component, error) {
	var record models.Component
	if err := r.components(ctx).First(&record, id).Error; err != nil {
		return batch.Component{}, notFound(err, "component %d", id)
	}
	return toComponent(record), nil
}

func (r *Gorm) GetChemical(ctx context.Context, id uint) (batch.Chemical, error) {
	var record models.Chemical
	if err := r.chemicals(ctx).First(&record, id).Error; err != nil {
		return batch.Chemical{}, notFound(err, "chemical %d", id)
	}
	return toChemical(record)
}

func (r *Gorm) LinksForChemical(ctx context.Context, chemicalID uint, componentIDs []uint) ([]batch.Link, error) {
	if componentIDs != nil && len(componentIDs) == 0 {
		return []batch.Link{}, nil
	}

	query := r.db.WithContext(ctx).
		Preload("Component.Category").
		Where("chemical_id = ?", chemicalID).
		Order("id asc")
	if componentIDs != nil {
		query = query.Where("component_id IN ?", componentIDs)
	}

	var rows []models.Batch
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list links of chemical %d: %w", chemicalID, err)
	}

	links := make([]batch.Link, 0, len(rows))
	for _, row := range rows {
		if row.Component == nil {
			return nil, fmt.Errorf("link %d points at missing component %d: %w", row.ID, row.ComponentID, ErrNotFound)
		}
		links = append(links, batch.Link{
			BatchID:     row.ID,
			ChemicalID:  row.ChemicalID,
			ReactionID:  row.ReactionID,
			Coefficient: row.Coefficient,
			Component:   toComponent(*row.Component),
		})
	}
	return links, nil
}

func (r *Gorm) FindChemicalByFormula(ctx context.Context, formula string) (batch.Chemical, error) {
	var record models.Chemical
	if err := r.chemicals(ctx).Where("formula = ?", formula).Order("id asc").First(&record).Error; err != nil {
		return batch.Chemical{}, notFound(err, "chemical with formula %s", formula)
	}
	return toChemical(record)
}

func (r *Gorm) FindComponentByFormula(ctx context.Context, formula string) (batch.Component, error) {
	var record models.Component
	if err := r.components(ctx).Where("formula = ?", formula).Order("id asc").First(&record).Error; err != nil {
		return batch.Component{}, notFound(err, "component with formula %s", formula)
	}
	return toComponent(record), nil
}

func (r *Gorm) ChemicalIDsForComponent(ctx context.Context, componentID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("component_id = ?", componentID).
		Distinct().
		Order("chemical_id asc").
		Pluck("chemical_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list sources of component %d: %w", componentID, err)
	}
	return ids, nil
}

// ListComponents returns all components, or those of one category when category is set.
func (r *Gorm) ListComponents(ctx context.Context, category string) ([]batch.Component, error) {
	query := r.components(ctx).Order("components.id asc")
	if category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = components.category_id").
			Where("categories.name = ?", category)
	}

	var records []models.Component
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}

	out := make([]batch.Component, 0, len(records))
	for _, record := range records {
		out = append(out, toComponent(record))
	}
	return out, nil
}

// ListChemicals returns the chemicals that supply at least one of componentIDs,
// or every chemical when componentIDs is empty.
func (r *Gorm) ListChemicals(ctx context.Context, componentIDs []uint) ([]batch.Chemical, error) {
	query := r.chemicals(ctx).Order("id asc")
	if len(componentIDs) > 0 {
		sources := r.db.Model(&models.Batch{}).
			Select("chemical_id").
			Where("component_id IN ?", componentIDs)
		query = query.Where("id IN (?)", sources)
	}

	var records []models.Chemical
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list chemicals: %w", err)
	}

	out := make([]batch.Chemical, 0, len(records))
	for _, record := range records {
		chem, err := toChemical(record)
		if err != nil {
			return nil, err
		}
		out = append(out, chem)
	}
	return out, nil
}

func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

func toComponent(record models.Component) batch.Component {
	comp := batch.Component{
		ID:        record.ID,
		Name:      record.Name,
		Formula:   record.Formula,
		ShortName: record.ShortName,
		MolWt:     record.MolWt,
	}
	if record.Category != nil {
		comp.Category = record.Category.Name
	}
	return comp
}

func toChemical(record models.Chemical) (batch.Chemical, error) {
	kindName := ""
	if record.Kind != nil {
		kindName = record.Kind.Name
	}
	kind, err := batch.ParseKind(kindName)
	if err != nil {
		return batch.Chemical{}, fmt.Errorf("chemical %d: %w", record.ID, err)
	}

	chem := batch.Chemical{
		ID:            record.ID,
		Name:          record.Name,
		Formula:       record.Formula,
		ShortName:     record.ShortName,
		CAS:           record.CAS,
		Kind:          kind,
		MolWt:         record.MolWt,
		Concentration: record.Concentration,
	}
	if record.Density != nil {
		chem.Density = *record.Density
	}
	if record.PhysicalForm != nil {
		chem.PhysicalForm = record.PhysicalForm.Form
	}
	return chem, nil
}
