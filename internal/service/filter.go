package service

import (
	"strings"
	"unicode/utf8"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/utils"
)

// listingFilter is a Criteria with its text fields normalized once.
type listingFilter struct {
	minBedrooms *float64
	maxPrice    *float64
	bairro      string
	tipo        string
	termos      []string
}

func newListingFilter(c *model.Criteria) listingFilter {
	f := listingFilter{maxPrice: c.PrecoMax}
	if c.Quartos != nil {
		q := float64(*c.Quartos)
		f.minBedrooms = &q
	}
	if c.Bairro != nil {
		f.bairro = utils.NormalizeText(*c.Bairro)
	}
	if c.Tipo != nil {
		f.tipo = utils.NormalizeText(*c.Tipo)
	}
	for _, t := range c.Termos {
		// Single-character terms would match almost anything.
		if t := utils.NormalizeText(t); utf8.RuneCountInString(t) > 1 {
			f.termos = append(f.termos, t)
		}
	}
	return f
}

// FilterListings returns the listings that satisfy every criterion set in c,
// in their original order. Unknown bedroom counts and prices never exclude a
// listing. A nil c returns listings unchanged.
func FilterListings(listings []model.Listing, c *model.Criteria) []model.Listing {
	if c == nil || listings == nil {
		return listings
	}

	f := newListingFilter(c)
	matched := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if f.matches(NormalizeListing(l)) {
			matched = append(matched, l)
		}
	}
	return matched
}

func (f listingFilter) matches(n NormalizedListing) bool {
	if f.minBedrooms != nil && n.Bedrooms != nil && *n.Bedrooms < *f.minBedrooms {
		return false
	}
	if f.maxPrice != nil && n.Price != nil && *n.Price > *f.maxPrice {
		return false
	}
	if f.bairro != "" && !strings.Contains(n.Text, f.bairro) {
		return false
	}
	if f.tipo != "" && !strings.Contains(n.Text, f.tipo) {
		return false
	}
	for _, t := range f.termos {
		if !strings.Contains(n.Text, t) {
			return false
		}
	}
	return true
}
