package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "batchcalc/internal/log"
	"batchcalc/internal/molwt"
)

// Components lists the known components, optionally restricted to one category.
func Components(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) || !available(w, r) {
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	components, err := repo.ListComponents(r.Context(), category)
	if err != nil {
		applog.Error(r.Context(), "failed to list components", "error", err, "category", category)
		writeJSONError(w, http.StatusInternalServerError, "unable to load components")
		return
	}
	writeJSON(w, http.StatusOK, components)
}

// Chemicals lists the chemicals supplying any of the component_id query values,
// or every chemical when none is given.
func Chemicals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) || !available(w, r) {
		return
	}

	var ids []uint
	for _, raw := range r.URL.Query()["component_id"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid component_id "+strconv.Quote(part))
				return
			}
			ids = append(ids, uint(id))
		}
	}

	chemicals, err := repo.ListChemicals(r.Context(), ids)
	if err != nil {
		applog.Error(r.Context(), "failed to list chemicals", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load chemicals")
		return
	}
	writeJSON(w, http.StatusOK, chemicals)
}

type molWtResponse struct {
	Formula     string         `json:"formula"`
	MolWt       float64        `json:"molwt"`
	Composition map[string]int `json:"composition"`
}

// MolecularWeight computes the molecular weight of the formula query value.
func MolecularWeight(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	formula := strings.TrimSpace(r.URL.Query().Get("formula"))
	if formula == "" {
		writeJSONError(w, http.StatusBadRequest, "formula is required")
		return
	}
	composition, err := molwt.Composition(formula)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	weight, err := molwt.Weight(formula)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, molWtResponse{Formula: formula, MolWt: weight, Composition: composition})
}
