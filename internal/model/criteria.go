package model

// MaxTerms caps the number of keyword terms kept in a Criteria.
const MaxTerms = 10

// Criteria represents the structured search intent extracted from a question.
// A nil field imposes no constraint.
type Criteria struct {
	Quartos  *int     `json:"quartos"`   // minimum bedrooms
	Bairro   *string  `json:"bairro"`    // neighborhood
	Tipo     *string  `json:"tipo"`      // property type, e.g. apartamento, casa
	PrecoMax *float64 `json:"preco_max"` // maximum price in BRL
	Termos   []string `json:"termos"`    // keyword terms
}

// EmptyCriteria returns a Criteria with every field unset.
func EmptyCriteria() *Criteria {
	return &Criteria{Termos: []string{}}
}

// IsEmpty reports whether c constrains nothing.
func (c *Criteria) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Quartos == nil && c.Bairro == nil && c.Tipo == nil && c.PrecoMax == nil && len(c.Termos) == 0
}

// UniqueTerms drops blanks and repeats from terms, keeping first occurrences,
// and caps the result at MaxTerms. The result is never nil.
func UniqueTerms(terms []string) []string {
	result := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
		if len(result) == MaxTerms {
			break
		}
	}
	return result
}
