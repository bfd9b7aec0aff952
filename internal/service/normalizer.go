package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/utils"
)

// NormalizedListing is the view of a listing the filter works on.
// Bedrooms and Price are nil when the record does not say.
type NormalizedListing struct {
	Bedrooms *float64
	Price    *float64
	Text     string // normalized searchable text
}

// NormalizeListing derives the bedroom count, price and searchable text of l.
func NormalizeListing(l model.Listing) NormalizedListing {
	return NormalizedListing{
		Bedrooms: ListingBedrooms(l),
		Price:    ListingPrice(l),
		Text:     ListingText(l),
	}
}

// ListingBedrooms returns the bedroom count of l, or nil when unknown.
func ListingBedrooms(l model.Listing) *float64 {
	v, _ := l.Probe(model.BedroomFields...)
	return coerceNumber(v)
}

// ListingPrice returns the price of l, or nil when unknown.
func ListingPrice(l model.Listing) *float64 {
	v, _ := l.Probe(model.PriceFields...)
	return coerceNumber(v)
}

// ListingText joins the descriptive fields of l and normalizes the result.
func ListingText(l model.Listing) string {
	parts := make([]string, len(model.TextFields))
	for i, names := range model.TextFields {
		v, _ := l.Probe(names...)
		parts[i] = textValue(v)
	}
	return utils.NormalizeText(strings.Join(parts, " "))
}

// coerceNumber takes numbers as they are and strips everything but digits
// from strings. Any other kind of value is unknown.
func coerceNumber(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
		return utils.ParseDigits(n.String())
	case string:
		return utils.ParseDigits(n)
	default:
		return nil
	}
}

func textValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
