package models

import (
	"gorm.io/gorm"
)

// Reaction documents how a chemical turns into its components.
type Reaction struct {
	gorm.Model
	Reaction string `gorm:"not null" json:"reaction"`
}

type Batch struct {
	gorm.Model
	ChemicalID  uint       `gorm:"not null;index" json:"chemical_id"`
	Chemical    *Chemical  `gorm:"foreignKey:ChemicalID" json:"chemical,omitempty"`
	ComponentID uint       `gorm:"not null;index" json:"component_id"`
	Component   *Component `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
	ReactionID  *uint      `json:"reaction_id,omitempty"`
	Reaction    *Reaction  `gorm:"foreignKey:ReactionID" json:"reaction,omitempty"`

	// Meaning depends on the chemical kind: a weight fraction for mixtures and
	// a stoichiometric coefficient per mole of chemical otherwise.
	Coefficient float64 `json:"coefficient"`
}

// TableName keeps the table name of existing batch databases.
func (Batch) TableName() string {
	return "batch"
}
