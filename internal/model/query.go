package model

import "strings"

// SearchRequest is the body of POST /api/v1/buscar. The question may come
// under any of the four names; the first non-blank one wins.
type SearchRequest struct {
	Pergunta string `json:"pergunta"`
	Mensagem string `json:"mensagem"`
	Message  string `json:"message"`
	Query    string `json:"query"`
}

// Question returns the first non-blank question field.
func (r *SearchRequest) Question() string {
	for _, q := range []string{r.Pergunta, r.Mensagem, r.Message, r.Query} {
		if strings.TrimSpace(q) != "" {
			return q
		}
	}
	return ""
}

// SearchResponse is the result of one natural-language search.
type SearchResponse struct {
	Pergunta  string    `json:"pergunta"`
	Criterios *Criteria `json:"criterios"`
	Total     int       `json:"total"`   // matches before truncation
	Imoveis   []Listing `json:"imoveis"` // first matches, capped by the result limit
	Took      int64     `json:"took_ms"`
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
