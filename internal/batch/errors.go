package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoComponents is returned when a calculation is requested without components.
	ErrNoComponents = errors.New("batch: no components selected")
	// ErrNoChemicals is returned when a calculation is requested without chemicals.
	ErrNoChemicals = errors.New("batch: no chemicals selected")
	// ErrSingularSystem is returned when the linear solve does not produce a finite result.
	ErrSingularSystem = errors.New("batch: singular or ill-conditioned system")
	// ErrInvalidScale is returned by the rescalers for zero, negative or non-finite scales.
	ErrInvalidScale = errors.New("batch: invalid scale")
)

// UnreachableComponentError reports a selected component that no selected chemical supplies.
type UnreachableComponentError struct {
	ComponentID uint
	Name        string
}

func (e *UnreachableComponentError) Error() string {
	return fmt.Sprintf("batch: component %q (id %d) has no source among the selected chemicals", e.Name, e.ComponentID)
}

// UnsupportedKindError reports a chemical kind name outside mixture, solution and reactant.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("batch: unsupported chemical kind %q", e.Kind)
}

// TooManyLinksError reports a solution chemical linked to more than two components.
type TooManyLinksError struct {
	ChemicalID uint
	Count      int
}

func (e *TooManyLinksError) Error() string {
	return fmt.Sprintf("batch: solution chemical %d has %d linked components, at most %d are supported", e.ChemicalID, e.Count, maxSolutionLinks)
}

// InvalidFormulaTokenError reports a composition token that is not a formula.
type InvalidFormulaTokenError struct {
	Token string
}

func (e *InvalidFormulaTokenError) Error() string {
	return fmt.Sprintf("batch: invalid formula token %q", e.Token)
}

// FractionSumError reports weight fractions for one chemical that do not add up to one.
type FractionSumError struct {
	ChemicalID uint
	Sum        float64
}

func (e *FractionSumError) Error() string {
	return fmt.Sprintf("batch: weight fractions of chemical %d sum to %.6f, want 1", e.ChemicalID, e.Sum)
}

// DegenerateReactantError reports a multi-link reactant whose stoichiometric masses cancel out.
type DegenerateReactantError struct {
	ChemicalID uint
}

func (e *DegenerateReactantError) Error() string {
	return fmt.Sprintf("batch: reactant %d has zero total stoichiometric mass", e.ChemicalID)
}

// Unwrap ties degenerate reactants to ErrSingularSystem.
func (e *DegenerateReactantError) Unwrap() error { return ErrSingularSystem }

// IndexError reports a selection index outside the value slice.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("batch: index %d out of range [0,%d)", e.Index, e.Len)
}
