package models

import (
	"gorm.io/gorm"
)

// Kind names how the batch coefficients of a chemical are interpreted:
// "mixture", "solution" or "reactant".
type Kind struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type PhysicalForm struct {
	gorm.Model
	Form string `gorm:"uniqueIndex;not null" json:"form"`
}

type Electrolyte struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Chemical struct {
	gorm.Model
	Name           string        `gorm:"not null" json:"name"`
	Formula        string        `gorm:"index;not null" json:"formula"`
	MolWt          float64       `gorm:"column:molwt;not null" json:"molwt"`
	ShortName      string        `json:"short_name"`
	Concentration  float64       `gorm:"not null;default:1" json:"concentration"`
	CAS            string        `gorm:"column:cas" json:"cas"`
	Density        *float64      `json:"density,omitempty"`
	PK             *float64      `gorm:"column:pk" json:"pk,omitempty"`
	Smiles         string        `json:"smiles"`
	KindID         uint          `gorm:"not null" json:"kind_id"`
	Kind           *Kind         `gorm:"foreignKey:KindID" json:"kind,omitempty"`
	ElectrolyteID  *uint         `json:"electrolyte_id,omitempty"`
	Electrolyte    *Electrolyte  `gorm:"foreignKey:ElectrolyteID" json:"electrolyte,omitempty"`
	PhysicalFormID *uint         `json:"physical_form_id,omitempty"`
	PhysicalForm   *PhysicalForm `gorm:"foreignKey:PhysicalFormID" json:"physical_form,omitempty"`
}
