package models

import (
	"gorm.io/gorm"
)

// Category groups components: zeolite building blocks, templates and growth modifiers.
type Category struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	FullName string `json:"full_name"`
}

type Component struct {
	gorm.Model
	Name       string    `gorm:"not null" json:"name"`
	Formula    string    `gorm:"index;not null" json:"formula"`
	MolWt      float64   `gorm:"column:molwt;not null" json:"molwt"`
	ShortName  string    `json:"short_name"`
	CategoryID *uint     `json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
