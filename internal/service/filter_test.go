package service

import (
	"testing"

	"imovel-searcher/internal/model"
)

func TestFilterListings(t *testing.T) {
	tests := []struct {
		name     string
		criteria *model.Criteria
		want     []float64
	}{
		{
			name:     "empty criteria keeps everything",
			criteria: model.EmptyCriteria(),
			want:     []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "minimum bedrooms keeps unknown counts",
			criteria: &model.Criteria{Quartos: intPtr(3)},
			want:     []float64{2, 3, 4},
		},
		{
			name:     "price cap keeps unknown prices",
			criteria: &model.Criteria{PrecoMax: float64Ptr(1000000)},
			want:     []float64{1, 2, 3, 5},
		},
		{
			name:     "neighborhood ignores case and accents",
			criteria: &model.Criteria{Bairro: stringPtr("COPACABANA")},
			want:     []float64{1, 5},
		},
		{
			name:     "accented criterion matches plain text",
			criteria: &model.Criteria{Bairro: stringPtr("Cópacábana")},
			want:     []float64{1, 5},
		},
		{
			name:     "plain criterion matches accented text",
			criteria: &model.Criteria{Bairro: stringPtr("sao conrado")},
			want:     []float64{4},
		},
		{
			name:     "type",
			criteria: &model.Criteria{Tipo: stringPtr("casa")},
			want:     []float64{2},
		},
		{
			name:     "every term must appear",
			criteria: &model.Criteria{Termos: []string{"vista", "garagem"}},
			want:     []float64{4},
		},
		{
			name:     "terms ignore accents",
			criteria: &model.Criteria{Termos: []string{"cópacábana"}},
			want:     []float64{1, 5},
		},
		{
			name:     "terms ignore case and accents",
			criteria: &model.Criteria{Termos: []string{"Cópacábana"}},
			want:     []float64{1, 5},
		},
		{
			name:     "plain term matches accented text",
			criteria: &model.Criteria{Termos: []string{"SAO", "conrado"}},
			want:     []float64{4},
		},
		{
			name:     "single character terms are ignored",
			criteria: &model.Criteria{Termos: []string{"x", "copacabana"}},
			want:     []float64{1, 5},
		},
		{
			name: "criteria combine",
			criteria: &model.Criteria{
				Quartos:  intPtr(2),
				PrecoMax: float64Ptr(500000),
				Bairro:   stringPtr("copacabana"),
				Termos:   []string{},
			},
			want: []float64{1},
		},
		{
			name:     "nothing matches",
			criteria: &model.Criteria{Bairro: stringPtr("Ipanema")},
			want:     []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterListings(sampleListings(), tt.criteria)
			if ids := listingIDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("FilterListings() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFilterListings_PreservesOrderAndDuplicates(t *testing.T) {
	a := model.Listing{"id": float64(1), "bairro": "Leblon"}
	b := model.Listing{"id": float64(2), "bairro": "Centro"}
	listings := []model.Listing{a, b, a, a}

	got := FilterListings(listings, &model.Criteria{Bairro: stringPtr("leblon")})
	if ids := listingIDs(got); !equalIDs(ids, []float64{1, 1, 1}) {
		t.Errorf("FilterListings() = %v, want [1 1 1]", ids)
	}
}

func TestFilterListings_IsSubsequence(t *testing.T) {
	listings := sampleListings()
	got := FilterListings(listings, &model.Criteria{Quartos: intPtr(2)})
	if len(got) > len(listings) {
		t.Fatalf("filter grew the input: %d > %d", len(got), len(listings))
	}

	i := 0
	for _, l := range listings {
		if i < len(got) && l["id"] == got[i]["id"] {
			i++
		}
	}
	if i != len(got) {
		t.Errorf("result is not an ordered subsequence of the input")
	}
}

func TestFilterListings_NilInputs(t *testing.T) {
	listings := sampleListings()
	if got := FilterListings(listings, nil); len(got) != len(listings) {
		t.Errorf("nil criteria should keep all listings, got %d", len(got))
	}
	if got := FilterListings(nil, model.EmptyCriteria()); got != nil {
		t.Errorf("nil listings should stay nil, got %v", got)
	}
	if got := FilterListings([]model.Listing{}, &model.Criteria{Quartos: intPtr(1)}); got == nil || len(got) != 0 {
		t.Errorf("empty listings should give an empty result, got %#v", got)
	}
}
