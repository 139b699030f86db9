// Package batch converts target molar compositions into reagent masses and back.
package batch

import (
	"fmt"
	"regexp"
	"strings"
)

// WaterFormula identifies the solvent of solution chemicals and the water component.
const WaterFormula = "H2O"

const liquidForm = "liquid"

var digitsPattern = regexp.MustCompile(`(\d+)`)

// Component is a building block of the target composition.
type Component struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Formula   string  `json:"formula"`
	ShortName string  `json:"short_name,omitempty"`
	Category  string  `json:"category,omitempty"`
	MolWt     float64 `json:"molwt"`
	Moles     float64 `json:"moles"`
}

// Mass returns the mass of the component for its current mole number.
func (c Component) Mass() float64 {
	return MassFromMoles(c.Moles, c.MolWt)
}

// WithMoles returns a copy of the component holding the given mole number.
func (c Component) WithMoles(moles float64) Component {
	c.Moles = moles
	return c
}

// Label returns the short name when one is defined and the name otherwise.
func (c Component) Label() string {
	return label(c.ShortName, c.Name)
}

// HTMLLabel returns the short name or the formula with HTML subscripts.
func (c Component) HTMLLabel() string {
	if isUndefined(c.ShortName) {
		return HTMLFormula(c.Formula)
	}
	return c.ShortName
}

// Chemical is a reagent that supplies one or more components.
type Chemical struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Formula       string  `json:"formula"`
	ShortName     string  `json:"short_name,omitempty"`
	CAS           string  `json:"cas,omitempty"`
	Kind          Kind    `json:"kind"`
	MolWt         float64 `json:"molwt"`
	Concentration float64 `json:"concentration"`
	Density       float64 `json:"density,omitempty"`
	PhysicalForm  string  `json:"physical_form,omitempty"`
	Mass          float64 `json:"mass"`
}

// Moles returns the number of moles of the chemical for its current mass.
func (c Chemical) Moles() float64 {
	return MolesFromMass(c.Mass, c.MolWt)
}

// Volume returns the volume in cm3 for liquids with a known density.
func (c Chemical) Volume() (float64, bool) {
	if c.Density <= 0 || !strings.EqualFold(c.PhysicalForm, liquidForm) {
		return 0, false
	}
	return c.Mass / c.Density, true
}

// ActiveMass returns the mass that takes part in the mass balance: reactants
// only contribute their pure fraction.
func (c Chemical) ActiveMass() float64 {
	if c.Kind == Reactant {
		return c.Mass * c.Concentration
	}
	return c.Mass
}

// WithMass returns a copy of the chemical holding the given mass.
func (c Chemical) WithMass(mass float64) Chemical {
	c.Mass = mass
	return c
}

// Label returns the short name when one is defined and the name otherwise.
func (c Chemical) Label() string {
	return label(c.ShortName, c.Name)
}

// HTMLLabel returns the short name or HTML formula followed by the concentration.
func (c Chemical) HTMLLabel() string {
	base := c.ShortName
	if isUndefined(base) {
		base = HTMLFormula(c.Formula)
	}
	return fmt.Sprintf("%s (%4.1f%%)", base, 100*c.Concentration)
}

// Link is one batch record joined with the component it points at.
type Link struct {
	BatchID     uint      `json:"batch_id"`
	ChemicalID  uint      `json:"chemical_id"`
	ReactionID  *uint     `json:"reaction_id,omitempty"`
	Coefficient float64   `json:"coefficient"`
	Component   Component `json:"component"`
}

// WeightFraction is the share of a chemical's mass attributed to one component.
type WeightFraction struct {
	ComponentID uint    `json:"component_id"`
	Fraction    float64 `json:"fraction"`
}

// MassFromMoles converts a mole number into grams.
func MassFromMoles(moles, molwt float64) float64 {
	return moles * molwt
}

// MolesFromMass converts grams into a mole number.
func MolesFromMass(mass, molwt float64) float64 {
	if molwt == 0 {
		return 0
	}
	return mass / molwt
}

// HTMLFormula renders the digits of a formula as HTML subscripts.
func HTMLFormula(formula string) string {
	return digitsPattern.ReplaceAllString(formula, "<sub>$1</sub>")
}

// TeXFormula renders the digits of a formula as TeX subscripts.
func TeXFormula(formula string) string {
	return digitsPattern.ReplaceAllString(formula, "$$_{$1}$$")
}

func label(short, name string) string {
	if isUndefined(short) {
		return name
	}
	return short
}

func isUndefined(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "null", "none":
		return true
	}
	return false
}
