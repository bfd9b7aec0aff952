package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/utils"
)

var (
	bedroomPattern = regexp.MustCompile(`(\d+)\s*(quartos?|dormitorios?|suites?)`)

	// "ate 500 mil", "max R$ 800.000", "menos de 2.500"
	priceCapPattern = regexp.MustCompile(`(?i)(?:ate|até|max|maximo|máximo|menos de)\s*[\s R$]*(\d+(?:\.\d{3})*(?:,\d+)?)`)

	// "500 mil", "R$ 3.000 reais", " 800k"
	priceUnitPattern = regexp.MustCompile(`(?i)[\s R$](\d+(?:\.\d{3})*(?:,\d+)?)\s*(?:reais|mil|k)`)
)

// FallbackCriteria extracts criteria from a question without a language
// model. It only finds bedrooms, a price cap and keyword terms; neighborhood
// and property type are left unset.
func FallbackCriteria(query string) *model.Criteria {
	text := utils.NormalizeText(query)
	criteria := model.EmptyCriteria()

	if m := bedroomPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			criteria.Quartos = &n
		}
	}

	m := priceCapPattern.FindStringSubmatch(text)
	if m == nil {
		m = priceUnitPattern.FindStringSubmatch(text)
	}
	if m != nil {
		if price := utils.ParseDigits(m[1]); price != nil {
			// The multiplier looks at the whole question, not just the match.
			if strings.Contains(text, "mil") || strings.Contains(text, "k") {
				*price *= 1000
			}
			criteria.PrecoMax = price
		}
	}

	criteria.Termos = model.UniqueTerms(keywordTokens(text))
	return criteria
}

// keywordTokens keeps the words of text longer than two characters that
// contain at least one letter.
func keywordTokens(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) > 2 && utils.HasLetter(word) {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
