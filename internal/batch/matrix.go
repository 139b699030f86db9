package batch

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BuildMatrix assembles the chemicals x components weight-fraction matrix.
// Entry (i, j) is the share of chemical i's mass that ends up as component j.
func BuildMatrix(ctx context.Context, repo Repository, chemicals []Chemical, components []Component) (*mat.Dense, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}
	if len(chemicals) == 0 {
		return nil, ErrNoChemicals
	}

	componentIDs := make([]uint, len(components))
	column := make(map[uint]int, len(components))
	for j, comp := range components {
		componentIDs[j] = comp.ID
		column[comp.ID] = j
	}

	water := cachedWater(ctx, repo)
	matrix := mat.NewDense(len(chemicals), len(components), nil)

	for i, chem := range chemicals {
		links, err := repo.LinksForChemical(ctx, chem.ID, componentIDs)
		if err != nil {
			return nil, fmt.Errorf("load links for chemical %d: %w", chem.ID, err)
		}

		fractions, err := Resolve(chem, links, water)
		if err != nil {
			return nil, err
		}
		// Mixture links restricted to a partial selection legitimately sum below one.
		if chem.Kind != Mixture {
			if err := CheckFractions(chem.ID, fractions); err != nil {
				return nil, err
			}
		}

		for _, wf := range fractions {
			if j, ok := column[wf.ComponentID]; ok {
				matrix.Set(i, j, wf.Fraction)
			}
		}
	}

	return matrix, nil
}

// cachedWater looks the solvent up at most once per matrix build.
func cachedWater(ctx context.Context, repo Repository) WaterFunc {
	var (
		water  Chemical
		err    error
		loaded bool
	)
	return func() (Chemical, error) {
		if !loaded {
			water, err = repo.FindChemicalByFormula(ctx, WaterFormula)
			if err != nil {
				err = fmt.Errorf("look up solvent %s: %w", WaterFormula, err)
			}
			loaded = true
		}
		return water, err
	}
}

// TargetMasses returns the mass of every component for its mole number.
func TargetMasses(components []Component) []float64 {
	out := make([]float64, len(components))
	for j, comp := range components {
		out[j] = comp.Mass()
	}
	return out
}

// ActiveMasses returns the mass of every chemical that enters the mass balance.
func ActiveMasses(chemicals []Chemical) []float64 {
	out := make([]float64, len(chemicals))
	for i, chem := range chemicals {
		out[i] = chem.ActiveMass()
	}
	return out
}

// ComponentMasses computes Bt * X, the component masses delivered by the chemical masses X.
func ComponentMasses(b *mat.Dense, x []float64) ([]float64, error) {
	rows, cols := b.Dims()
	if len(x) != rows {
		return nil, fmt.Errorf("batch: %d chemical masses for a matrix with %d rows", len(x), rows)
	}
	var a mat.VecDense
	a.MulVec(b.T(), mat.NewVecDense(rows, append([]float64(nil), x...)))
	out := make([]float64, cols)
	for j := range out {
		out[j] = a.AtVec(j)
	}
	return out, nil
}

// MolesFromMasses returns copies of the components holding the moles for the given masses.
func MolesFromMasses(components []Component, masses []float64) ([]Component, error) {
	if len(masses) != len(components) {
		return nil, fmt.Errorf("batch: %d masses for %d components", len(masses), len(components))
	}
	out := make([]Component, len(components))
	for j, comp := range components {
		out[j] = comp.WithMoles(MolesFromMass(masses[j], comp.MolWt))
	}
	return out, nil
}

// Rows converts a matrix into row slices, for serialization.
func Rows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
