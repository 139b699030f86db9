package batch

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	applog "batchcalc/internal/log"
)

// Repository is the read-only record source the calculator depends on.
type Repository interface {
	GetComponent(ctx context.Context, id uint) (Component, error)
	GetChemical(ctx context.Context, id uint) (Chemical, error)
	// LinksForChemical returns the chemical's links, limited to componentIDs when it is non-nil.
	LinksForChemical(ctx context.Context, chemicalID uint, componentIDs []uint) ([]Link, error)
	FindChemicalByFormula(ctx context.Context, formula string) (Chemical, error)
	FindComponentByFormula(ctx context.Context, formula string) (Component, error)
	ChemicalIDsForComponent(ctx context.Context, componentID uint) ([]uint, error)
	ListComponents(ctx context.Context, category string) ([]Component, error)
	ListChemicals(ctx context.Context, componentIDs []uint) ([]Chemical, error)
}

// Request holds the selected components and chemicals of one calculation.
type Request struct {
	Components []Component `json:"components"`
	Chemicals  []Chemical  `json:"chemicals"`
}

// Result is the outcome of a calculation. Components and Chemicals are new
// copies carrying the computed moles or masses.
type Result struct {
	Components []Component `json:"components"`
	Chemicals  []Chemical  `json:"chemicals"`
	Matrix     *mat.Dense  `json:"-"`
	// Target holds the component masses A.
	Target []float64 `json:"target"`
	// Solution holds the active chemical masses X.
	Solution []float64 `json:"solution"`
}

// Selection picks a record by id together with a quantity: moles for
// components and grams for chemicals.
type Selection struct {
	ID       uint    `json:"id"`
	Quantity float64 `json:"quantity"`
}

// Calculator runs batch and composition calculations against a Repository.
type Calculator struct {
	repo Repository
}

// NewCalculator returns a Calculator reading records from repo.
func NewCalculator(repo Repository) *Calculator {
	return &Calculator{repo: repo}
}

// Validate checks the preconditions shared by both calculation directions.
func (c *Calculator) Validate(ctx context.Context, req Request) error {
	if len(req.Components) == 0 {
		return ErrNoComponents
	}
	if len(req.Chemicals) == 0 {
		return ErrNoChemicals
	}

	selected := make(map[uint]struct{}, len(req.Chemicals))
	for _, chem := range req.Chemicals {
		if !chem.Kind.Valid() {
			return &UnsupportedKindError{Kind: chem.Kind.String()}
		}
		selected[chem.ID] = struct{}{}
	}

	for _, comp := range req.Components {
		sources, err := c.repo.ChemicalIDsForComponent(ctx, comp.ID)
		if err != nil {
			return fmt.Errorf("load sources of component %d: %w", comp.ID, err)
		}
		if !anySelected(sources, selected) {
			return &UnreachableComponentError{ComponentID: comp.ID, Name: comp.Name}
		}
	}
	return nil
}

func anySelected(ids []uint, selected map[uint]struct{}) bool {
	for _, id := range ids {
		if _, ok := selected[id]; ok {
			return true
		}
	}
	return false
}

// CalculateMasses computes the mass of every chemical needed to obtain the
// component mole numbers of req.
func (c *Calculator) CalculateMasses(ctx context.Context, req Request) (Result, error) {
	if err := c.Validate(ctx, req); err != nil {
		return Result{}, err
	}

	b, err := BuildMatrix(ctx, c.repo, req.Chemicals, req.Components)
	if err != nil {
		return Result{}, err
	}
	target := TargetMasses(req.Components)

	rows, cols := b.Dims()
	applog.Debug(ctx, "solving batch system", "chemicals", rows, "components", cols, "square", rows == cols)

	solved, err := Solve(b, target)
	if err != nil {
		return Result{}, err
	}
	chemicals, err := FinalMasses(req.Chemicals, solved)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Components: append([]Component(nil), req.Components...),
		Chemicals:  chemicals,
		Matrix:     b,
		Target:     target,
		Solution:   solved,
	}, nil
}

// CalculateMoles computes the component mole numbers produced by the chemical
// masses of req.
func (c *Calculator) CalculateMoles(ctx context.Context, req Request) (Result, error) {
	if err := c.Validate(ctx, req); err != nil {
		return Result{}, err
	}

	b, err := BuildMatrix(ctx, c.repo, req.Chemicals, req.Components)
	if err != nil {
		return Result{}, err
	}
	active := ActiveMasses(req.Chemicals)
	masses, err := ComponentMasses(b, active)
	if err != nil {
		return Result{}, err
	}
	components, err := MolesFromMasses(req.Components, masses)
	if err != nil {
		return Result{}, err
	}

	applog.Debug(ctx, "composition calculated", "chemicals", len(req.Chemicals), "components", len(components))

	return Result{
		Components: components,
		Chemicals:  append([]Chemical(nil), req.Chemicals...),
		Matrix:     b,
		Target:     masses,
		Solution:   active,
	}, nil
}

// BatchMatrix returns the weight-fraction matrix for the given selection.
func (c *Calculator) BatchMatrix(ctx context.Context, chemicals []Chemical, components []Component) (*mat.Dense, error) {
	return BuildMatrix(ctx, c.repo, chemicals, components)
}

// SelectRequest loads the selected records and applies the requested quantities.
func (c *Calculator) SelectRequest(ctx context.Context, components, chemicals []Selection) (Request, error) {
	req := Request{
		Components: make([]Component, 0, len(components)),
		Chemicals:  make([]Chemical, 0, len(chemicals)),
	}
	for _, sel := range components {
		comp, err := c.repo.GetComponent(ctx, sel.ID)
		if err != nil {
			return Request{}, fmt.Errorf("load component %d: %w", sel.ID, err)
		}
		req.Components = append(req.Components, comp.WithMoles(sel.Quantity))
	}
	for _, sel := range chemicals {
		chem, err := c.repo.GetChemical(ctx, sel.ID)
		if err != nil {
			return Request{}, fmt.Errorf("load chemical %d: %w", sel.ID, err)
		}
		req.Chemicals = append(req.Chemicals, chem.WithMass(sel.Quantity))
	}
	return req, nil
}

// ComponentsFromFormula turns a composition string such as "4.8Na2O:Al2O3"
// into components holding the parsed mole numbers.
func (c *Calculator) ComponentsFromFormula(ctx context.Context, s, delimiter string) ([]Component, error) {
	terms, err := ParseFormulaString(s, delimiter)
	if err != nil {
		return nil, err
	}
	out := make([]Component, 0, len(terms))
	for _, term := range terms {
		comp, err := c.repo.FindComponentByFormula(ctx, term.Formula)
		if err != nil {
			return nil, fmt.Errorf("find component %s: %w", term.Formula, err)
		}
		out = append(out, comp.WithMoles(term.Coefficient))
	}
	return out, nil
}

// VerifyChemical resolves a chemical against all of its links and checks that
// the weight fractions add up to one.
func (c *Calculator) VerifyChemical(ctx context.Context, chem Chemical) error {
	links, err := c.repo.LinksForChemical(ctx, chem.ID, nil)
	if err != nil {
		return fmt.Errorf("load links for chemical %d: %w", chem.ID, err)
	}
	fractions, err := Resolve(chem, links, cachedWater(ctx, c.repo))
	if err != nil {
		return err
	}
	return CheckFractions(chem.ID, fractions)
}

// IsCalculationError reports whether err belongs to the calculator's error taxonomy,
// as opposed to a repository failure.
func IsCalculationError(err error) bool {
	var (
		unreachable *UnreachableComponentError
		kind        *UnsupportedKindError
		links       *TooManyLinksError
		token       *InvalidFormulaTokenError
		sum         *FractionSumError
		index       *IndexError
	)
	switch {
	case errors.Is(err, ErrNoComponents), errors.Is(err, ErrNoChemicals),
		errors.Is(err, ErrSingularSystem), errors.Is(err, ErrInvalidScale):
		return true
	case errors.As(err, &unreachable), errors.As(err, &kind), errors.As(err, &links),
		errors.As(err, &token), errors.As(err, &sum), errors.As(err, &index):
		return true
	}
	return false
}
