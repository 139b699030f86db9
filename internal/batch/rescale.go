package batch

import "math"

// RescaleAll divides every mass by factor.
func RescaleAll(masses []float64, factor float64) ([]float64, error) {
	if !validScale(factor) {
		return nil, ErrInvalidScale
	}
	return divide(masses, factor), nil
}

// RescaleToSample scales all masses so that the selected chemicals add up to sampleSize.
func RescaleToSample(masses []float64, selected []int, sampleSize float64) ([]float64, error) {
	if !validScale(sampleSize) || sampleSize < 0 {
		return nil, ErrInvalidScale
	}
	total := 0.0
	for _, idx := range selected {
		if idx < 0 || idx >= len(masses) {
			return nil, &IndexError{Index: idx, Len: len(masses)}
		}
		total += masses[idx]
	}
	scale := total / sampleSize
	if !validScale(scale) {
		return nil, ErrInvalidScale
	}
	return divide(masses, scale), nil
}

// RescaleToChemical scales all masses so that the chemical at index weighs desired.
func RescaleToChemical(masses []float64, index int, desired float64) ([]float64, error) {
	return rescaleTo(masses, index, desired)
}

// RescaleToItem scales all mole numbers so that the component at index has desired moles.
func RescaleToItem(moles []float64, index int, desired float64) ([]float64, error) {
	return rescaleTo(moles, index, desired)
}

func rescaleTo(values []float64, index int, desired float64) ([]float64, error) {
	if index < 0 || index >= len(values) {
		return nil, &IndexError{Index: index, Len: len(values)}
	}
	if !validScale(desired) || desired < 0 {
		return nil, ErrInvalidScale
	}
	scale := values[index] / desired
	if !validScale(scale) {
		return nil, ErrInvalidScale
	}
	return divide(values, scale), nil
}

func divide(values []float64, scale float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / scale
	}
	return out
}

func validScale(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
