package handlers

import (
	"net/http"
	"strings"

	"batchcalc/internal/batch"
	applog "batchcalc/internal/log"
)

type componentSelection struct {
	ID    uint    `json:"id"`
	Moles float64 `json:"moles"`
}

type chemicalSelection struct {
	ID   uint    `json:"id"`
	Mass float64 `json:"mass"`
}

// batchRequest selects records by id. Formula may replace Components with a
// composition string such as "4.8Na2O:Al2O3:15.8SiO2".
type batchRequest struct {
	Components []componentSelection `json:"components"`
	Chemicals  []chemicalSelection  `json:"chemicals"`
	Formula    string               `json:"formula,omitempty"`
	Delimiter  string               `json:"delimiter,omitempty"`
}

type batchResponse struct {
	Components []batch.Component `json:"components"`
	Chemicals  []batch.Chemical  `json:"chemicals"`
	Matrix     [][]float64       `json:"matrix"`
	Target     []float64         `json:"target,omitempty"`
	Solution   []float64         `json:"solution,omitempty"`
	// Scaled holds the chemical masses divided by ScaleFactor.
	Scaled      []float64 `json:"scaled,omitempty"`
	ScaleFactor float64   `json:"scale_factor,omitempty"`
}

// loadRequest decodes the body and loads the selected records.
func loadRequest(w http.ResponseWriter, r *http.Request) (batch.Request, bool) {
	var body batchRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return batch.Request{}, false
	}

	components := make([]batch.Selection, 0, len(body.Components))
	for _, c := range body.Components {
		components = append(components, batch.Selection{ID: c.ID, Quantity: c.Moles})
	}
	chemicals := make([]batch.Selection, 0, len(body.Chemicals))
	for _, c := range body.Chemicals {
		chemicals = append(chemicals, batch.Selection{ID: c.ID, Quantity: c.Mass})
	}

	req, err := calculator.SelectRequest(r.Context(), components, chemicals)
	if err != nil {
		writeCalculationError(r.Context(), w, err)
		return batch.Request{}, false
	}

	if formula := strings.TrimSpace(body.Formula); formula != "" {
		if len(body.Components) > 0 {
			writeJSONError(w, http.StatusBadRequest, "components and formula are mutually exclusive")
			return batch.Request{}, false
		}
		parsed, err := calculator.ComponentsFromFormula(r.Context(), formula, body.Delimiter)
		if err != nil {
			writeCalculationError(r.Context(), w, err)
			return batch.Request{}, false
		}
		req.Components = parsed
	}
	return req, true
}

// BatchMasses computes the chemical masses for the requested component moles.
func BatchMasses(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) || !available(w, r) {
		return
	}
	req, ok := loadRequest(w, r)
	if !ok {
		return
	}

	res, err := calculator.CalculateMasses(r.Context(), req)
	if err != nil {
		applog.Debug(r.Context(), "batch calculation rejected", "error", err)
		writeCalculationError(r.Context(), w, err)
		return
	}

	masses := make([]float64, len(res.Chemicals))
	for i, chem := range res.Chemicals {
		masses[i] = chem.Mass
	}
	scaled, err := batch.RescaleAll(masses, defaults.ScaleFactor)
	if err != nil {
		writeCalculationError(r.Context(), w, err)
		return
	}

	applog.Info(r.Context(), "batch calculated", "chemicals", len(res.Chemicals), "components", len(res.Components))
	writeJSON(w, http.StatusOK, batchResponse{
		Components:  res.Components,
		Chemicals:   res.Chemicals,
		Matrix:      batch.Rows(res.Matrix),
		Target:      res.Target,
		Solution:    res.Solution,
		Scaled:      scaled,
		ScaleFactor: defaults.ScaleFactor,
	})
}

// BatchMoles computes the component moles produced by the requested chemical masses.
func BatchMoles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) || !available(w, r) {
		return
	}
	req, ok := loadRequest(w, r)
	if !ok {
		return
	}

	res, err := calculator.CalculateMoles(r.Context(), req)
	if err != nil {
		applog.Debug(r.Context(), "composition calculation rejected", "error", err)
		writeCalculationError(r.Context(), w, err)
		return
	}

	applog.Info(r.Context(), "composition calculated", "chemicals", len(res.Chemicals), "components", len(res.Components))
	writeJSON(w, http.StatusOK, batchResponse{
		Components: res.Components,
		Chemicals:  res.Chemicals,
		Matrix:     batch.Rows(res.Matrix),
		Target:     res.Target,
		Solution:   res.Solution,
	})
}

// BatchMatrix returns the weight-fraction matrix of the selection.
func BatchMatrix(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) || !available(w, r) {
		return
	}
	req, ok := loadRequest(w, r)
	if !ok {
		return
	}

	b, err := calculator.BatchMatrix(r.Context(), req.Chemicals, req.Components)
	if err != nil {
		writeCalculationError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{
		Components: req.Components,
		Chemicals:  req.Chemicals,
		Matrix:     batch.Rows(b),
	})
}
