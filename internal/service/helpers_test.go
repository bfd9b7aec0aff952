package service

import (
	"context"

	"imovel-searcher/internal/model"
)

// Helper functions
func float64Ptr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

// fakeCompletion is a CompletionClient returning a canned answer
type fakeCompletion struct {
	content string
	err     error
	calls   int
	system  string
	user    string
}

func (f *fakeCompletion) CompleteJSON(ctx context.Context, systemPrompt, userText string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.user = userText
	return f.content, f.err
}

// pages serves fixed pages by index and records what was asked
type pages struct {
	payloads []any
	requests []int
	perPage  []int
	errAt    int
	err      error
}

func (p *pages) FetchPage(ctx context.Context, page, perPage int) (any, error) {
	p.requests = append(p.requests, page)
	p.perPage = append(p.perPage, perPage)
	if p.err != nil && page == p.errAt {
		return nil, p.err
	}
	if page-1 < len(p.payloads) {
		return p.payloads[page-1], nil
	}
	return []any{}, nil
}

// makePage builds a page of n listings whose ids start at offset
func makePage(n, offset int) []any {
	page := make([]any, n)
	for i := range page {
		page[i] = map[string]any{"id": float64(offset + i), "titulo": "Imóvel"}
	}
	return page
}

func sampleListings() []model.Listing {
	return []model.Listing{
		{"id": float64(1), "titulo": "Apartamento em Copacabana", "quartos": float64(2), "valor": "R$ 450.000", "bairro": "Copacabana", "cidade": "Rio de Janeiro", "tipo": "Apartamento"},
		{"id": float64(2), "title": "Casa com varanda", "bedrooms": "3 quartos", "price": float64(900000), "neighborhood": "Botafogo", "type": "Casa"},
		{"id": float64(3), "nome": "Sala comercial", "dormitorios": nil, "preco": nil, "bairro_nome": "Centro", "finalidade": "Comercial"},
		{"id": float64(4), "titulo": "Cobertura São Conrado", "quartos": float64(4), "valor": float64(2500000), "bairro": "São Conrado", "descricao": "Vista para o mar, garagem"},
		{"id": float64(5), "titulo": "Kitnet", "quartos": float64(1), "valor": "sob consulta", "bairro": "Copacabana"},
	}
}

func listingIDs(listings []model.Listing) []float64 {
	ids := make([]float64, len(listings))
	for i, l := range listings {
		ids[i], _ = l["id"].(float64)
	}
	return ids
}

func equalIDs(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
