package batch

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDelimiter separates the terms of a composition string such as "2SiO2:Al2O3".
const DefaultDelimiter = ":"

var termPattern = regexp.MustCompile(`^(?P<nmol>-?\d+\.\d+|-?\d+)?(?P<formula>[A-Za-z(][A-Za-z0-9()]*)$`)

// FormulaTerm is one term of a composition string.
type FormulaTerm struct {
	Formula     string  `json:"formula"`
	Coefficient float64 `json:"coefficient"`
}

// ParseFormulaString splits a composition string into formulas and molar
// coefficients. A missing coefficient means 1. Whitespace is ignored and every
// term that is not a formula fails the whole parse.
func ParseFormulaString(s, delimiter string) ([]FormulaTerm, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	compact := strings.Join(strings.Fields(s), "")

	tokens := strings.Split(compact, delimiter)
	terms := make([]FormulaTerm, 0, len(tokens))
	for _, token := range tokens {
		match := termPattern.FindStringSubmatch(token)
		if match == nil {
			return nil, &InvalidFormulaTokenError{Token: token}
		}

		coefficient := 1.0
		if nmol := match[termPattern.SubexpIndex("nmol")]; nmol != "" {
			parsed, err := strconv.ParseFloat(nmol, 64)
			if err != nil {
				return nil, &InvalidFormulaTokenError{Token: token}
			}
			coefficient = parsed
		}
		terms = append(terms, FormulaTerm{
			Formula:     match[termPattern.SubexpIndex("formula")],
			Coefficient: coefficient,
		})
	}
	return terms, nil
}
