package batch

import "strings"

// Kind determines how the coefficients of a chemical's batch links are read.
type Kind uint8

const (
	// Mixture chemicals store weight fractions directly in their link coefficients.
	Mixture Kind = iota + 1
	// Solution chemicals are aqueous solutions of one solute at a known concentration.
	Solution
	// Reactant chemicals decompose stoichiometrically into their linked components.
	Reactant
)

var kindNames = map[Kind]string{
	Mixture:  "mixture",
	Solution: "solution",
	Reactant: "reactant",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a stored kind name into a Kind. It is the only place an
// unknown kind can enter the calculator.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, known := range kindNames {
		if known == normalized {
			return kind, nil
		}
	}
	return 0, &UnsupportedKindError{Kind: name}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &UnsupportedKindError{Kind: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
