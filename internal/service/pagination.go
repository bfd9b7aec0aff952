package service

import (
	"context"

	"imovel-searcher/internal/model"
)

// PageFetcher returns one decoded page of the catalog. Pages start at 1.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, perPage int) (any, error)
}

// PageFetcherFunc adapts a function to PageFetcher
type PageFetcherFunc func(ctx context.Context, page, perPage int) (any, error)

// FetchPage calls f
func (f PageFetcherFunc) FetchPage(ctx context.Context, page, perPage int) (any, error) {
	return f(ctx, page, perPage)
}

// AggregatePages reads pages 1..maxPages one after the other and concatenates
// their listings. It stops early on an empty page or on a page shorter than
// perPage, which marks the end of the catalog. A fetch error is returned as
// is and discards the pages read so far.
func AggregatePages(ctx context.Context, fetcher PageFetcher, maxPages, perPage int) ([]model.Listing, error) {
	listings := []model.Listing{}
	if maxPages < 1 || perPage < 1 {
		return listings, nil
	}

	for page := 1; page <= maxPages; page++ {
		payload, err := fetcher.FetchPage(ctx, page, perPage)
		if err != nil {
			return nil, err
		}

		items := pageItems(payload)
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			switch obj := item.(type) {
			case map[string]any:
				listings = append(listings, model.Listing(obj))
			case model.Listing:
				listings = append(listings, obj)
			}
		}
		if len(items) < perPage {
			break
		}
	}

	return listings, nil
}

// pageItems resolves the record array of a page payload: either the payload
// itself or the first wrapper key that holds an array.
func pageItems(payload any) []any {
	switch p := payload.(type) {
	case []any:
		return p
	case []model.Listing:
		items := make([]any, len(p))
		for i, l := range p {
			items[i] = l
		}
		return items
	case map[string]any:
		for _, key := range model.PageKeys {
			if items, ok := p[key].([]any); ok {
				return items
			}
		}
	}
	return nil
}
