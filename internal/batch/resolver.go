package batch

import (
	"math"
	"strings"
)

const (
	maxSolutionLinks = 2
	// pureTolerance is how close to 1 a solution concentration must be to count as pure solute.
	pureTolerance = 1e-4
	// FractionTolerance bounds the deviation of a chemical's weight-fraction sum from one.
	FractionTolerance = 1e-6
)

// WaterFunc returns the water chemical used as solvent for solution chemicals.
type WaterFunc func() (Chemical, error)

// Resolve computes the fraction of the chemical's mass attributed to each linked
// component. The water lookup is only invoked for solution chemicals.
func Resolve(chem Chemical, links []Link, water WaterFunc) ([]WeightFraction, error) {
	if len(links) == 0 {
		return nil, nil
	}

	switch chem.Kind {
	case Mixture:
		return resolveMixture(links), nil
	case Solution:
		if len(links) > maxSolutionLinks {
			return nil, &TooManyLinksError{ChemicalID: chem.ID, Count: len(links)}
		}
		solvent, err := water()
		if err != nil {
			return nil, err
		}
		return resolveSolution(chem, links, solvent.MolWt), nil
	case Reactant:
		return resolveReactant(chem, links)
	default:
		return nil, &UnsupportedKindError{Kind: chem.Kind.String()}
	}
}

func resolveMixture(links []Link) []WeightFraction {
	out := make([]WeightFraction, 0, len(links))
	for _, link := range links {
		out = append(out, WeightFraction{ComponentID: link.Component.ID, Fraction: link.Coefficient})
	}
	return out
}

// SolutionMoles returns the moles of solute and solvent per mole of pure solute
// for a solution of the given mass-fraction concentration.
func SolutionMoles(soluteMolWt, solventMolWt, concentration float64) (solute, solvent float64) {
	if math.Abs(concentration-1.0) <= pureTolerance {
		return 1.0, 0.0
	}
	c := concentration
	solute = soluteMolWt * solventMolWt / (solventMolWt + (1.0-c)*soluteMolWt/c) / soluteMolWt
	solvent = soluteMolWt * solventMolWt / (soluteMolWt + c*solventMolWt/(1.0-c)) / solventMolWt
	return solute, solvent
}

func resolveSolution(chem Chemical, links []Link, solventMolWt float64) []WeightFraction {
	nSolute, nSolvent := SolutionMoles(chem.MolWt, solventMolWt, chem.Concentration)

	masses := make([]float64, len(links))
	total := 0.0
	for i, link := range links {
		moles := link.Coefficient * nSolute
		if isWater(link.Component.Formula) {
			moles += nSolvent
		}
		masses[i] = moles * link.Component.MolWt
		total += masses[i]
	}

	out := make([]WeightFraction, 0, len(links))
	for i, link := range links {
		out = append(out, WeightFraction{ComponentID: link.Component.ID, Fraction: masses[i] / total})
	}
	return out
}

func resolveReactant(chem Chemical, links []Link) ([]WeightFraction, error) {
	if len(links) == 1 {
		return []WeightFraction{{ComponentID: links[0].Component.ID, Fraction: 1.0}}, nil
	}

	total := 0.0
	for _, link := range links {
		total += link.Coefficient * link.Component.MolWt
	}
	if total == 0 {
		return nil, &DegenerateReactantError{ChemicalID: chem.ID}
	}

	out := make([]WeightFraction, 0, len(links))
	for _, link := range links {
		out = append(out, WeightFraction{
			ComponentID: link.Component.ID,
			Fraction:    link.Coefficient * link.Component.MolWt / total,
		})
	}
	return out, nil
}

// CheckFractions verifies that the weight fractions of one chemical add up to one.
func CheckFractions(chemicalID uint, fractions []WeightFraction) error {
	if len(fractions) == 0 {
		return nil
	}
	sum := 0.0
	for _, wf := range fractions {
		sum += wf.Fraction
	}
	if math.IsNaN(sum) || math.Abs(sum-1.0) > FractionTolerance {
		return &FractionSumError{ChemicalID: chemicalID, Sum: sum}
	}
	return nil
}

func isWater(formula string) bool {
	return strings.TrimSpace(formula) == WaterFormula
}
