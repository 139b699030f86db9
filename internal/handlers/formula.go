package handlers

import (
	"net/http"

	"batchcalc/internal/batch"
)

type formulaRequest struct {
	Formula   string `json:"formula"`
	Delimiter string `json:"delimiter,omitempty"`
	// Resolve looks every parsed formula up as a component.
	Resolve bool `json:"resolve,omitempty"`
}

type formulaResponse struct {
	Terms      []batch.FormulaTerm `json:"terms"`
	Components []batch.Component   `json:"components,omitempty"`
}

// ParseFormula splits a composition string into formulas and mole coefficients.
func ParseFormula(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var body formulaRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	terms, err := batch.ParseFormulaString(body.Formula, body.Delimiter)
	if err != nil {
		writeCalculationError(r.Context(), w, err)
		return
	}
	resp := formulaResponse{Terms: terms}

	if body.Resolve {
		if !available(w, r) {
			return
		}
		resp.Components, err = calculator.ComponentsFromFormula(r.Context(), body.Formula, body.Delimiter)
		if err != nil {
			writeCalculationError(r.Context(), w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
