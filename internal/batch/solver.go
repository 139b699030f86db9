package batch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxCondition is the largest condition number accepted for a square system.
const maxCondition = 1e12

// Solve finds the chemical masses X satisfying Bt * X = A. Square systems are
// solved exactly through an LU factorization, any other shape in the least
// squares sense (minimum norm when underdetermined).
func Solve(b *mat.Dense, target []float64) ([]float64, error) {
	rows, cols := b.Dims()
	if len(target) != cols {
		return nil, fmt.Errorf("batch: target vector has %d entries for %d components", len(target), cols)
	}

	rhs := mat.NewVecDense(cols, append([]float64(nil), target...))
	var x mat.VecDense

	if rows == cols {
		var lu mat.LU
		lu.Factorize(b.T())
		if cond := lu.Cond(); cond > maxCondition {
			return nil, fmt.Errorf("%w: condition number %g", ErrSingularSystem, cond)
		}
		if err := lu.SolveVecTo(&x, false, rhs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
		}
	} else if err := x.SolveVec(b.T(), rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	out := make([]float64, rows)
	for i := range out {
		v := x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite mass for chemical %d", ErrSingularSystem, i)
		}
		out[i] = v
	}
	return out, nil
}

// FinalMasses converts solved active masses into the masses to weigh out.
// Reactants are divided by their concentration; other kinds are taken as is.
func FinalMasses(chemicals []Chemical, solved []float64) ([]Chemical, error) {
	if len(solved) != len(chemicals) {
		return nil, fmt.Errorf("batch: %d solved masses for %d chemicals", len(solved), len(chemicals))
	}
	out := make([]Chemical, len(chemicals))
	for i, chem := range chemicals {
		mass := solved[i]
		if chem.Kind == Reactant {
			if chem.Concentration == 0 {
				return nil, fmt.Errorf("%w: reactant %d has zero concentration", ErrSingularSystem, chem.ID)
			}
			mass /= chem.Concentration
		}
		out[i] = chem.WithMass(mass)
	}
	return out, nil
}
