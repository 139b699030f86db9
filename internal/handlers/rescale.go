package handlers

import (
	"net/http"
	"strings"

	"batchcalc/internal/batch"
)

const (
	rescaleAll      = "all"
	rescaleSample   = "sample"
	rescaleChemical = "chemical"
	rescaleItem     = "item"
)

type rescaleRequest struct {
	Mode     string    `json:"mode"`
	Values   []float64 `json:"values"`
	Factor   *float64  `json:"factor,omitempty"`
	Selected []int     `json:"selected,omitempty"`
	Index    int       `json:"index"`
	Target   *float64  `json:"target,omitempty"`
}

type rescaleResponse struct {
	Mode   string    `json:"mode"`
	Values []float64 `json:"values"`
}

// Rescale applies one of the mass rescalers to the posted values. Missing
// factor and sample size fall back to the configured defaults.
func Rescale(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var body rescaleRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		out []float64
		err error
	)
	mode := strings.ToLower(strings.TrimSpace(body.Mode))
	switch mode {
	case rescaleAll:
		factor := defaults.ScaleFactor
		if body.Factor != nil {
			factor = *body.Factor
		}
		out, err = batch.RescaleAll(body.Values, factor)
	case rescaleSample:
		size := defaults.SampleSize
		if body.Target != nil {
			size = *body.Target
		}
		selected := body.Selected
		if selected == nil {
			selected = make([]int, len(body.Values))
			for i := range selected {
				selected[i] = i
			}
		}
		out, err = batch.RescaleToSample(body.Values, selected, size)
	case rescaleChemical, rescaleItem:
		if body.Target == nil {
			writeJSONError(w, http.StatusBadRequest, "target is required for mode "+mode)
			return
		}
		if mode == rescaleChemical {
			out, err = batch.RescaleToChemical(body.Values, body.Index, *body.Target)
		} else {
			out, err = batch.RescaleToItem(body.Values, body.Index, *body.Target)
		}
	default:
		writeJSONError(w, http.StatusBadRequest, "unknown rescale mode "+body.Mode)
		return
	}
	if err != nil {
		writeCalculationError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, rescaleResponse{Mode: mode, Values: out})
}
