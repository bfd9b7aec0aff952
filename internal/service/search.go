package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/observability"
)

// SearchOptions bounds how much of the catalog one question reads and
// how many matches are returned
type SearchOptions struct {
	MaxPages    int
	PerPage     int
	ResultLimit int
}

// SearchService handles search business logic
type SearchService struct {
	source    PageFetcher
	extractor *CriteriaExtractor
	options   SearchOptions
	logger    *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	source PageFetcher,
	extractor *CriteriaExtractor,
	options SearchOptions,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		source:    source,
		extractor: extractor,
		options:   options,
		logger:    logger,
	}
}

// ExtractCriteria returns the criteria of a question without reading the catalog
func (s *SearchService) ExtractCriteria(ctx context.Context, question string) *model.Criteria {
	return s.extractor.Extract(ctx, question)
}

// Search extracts criteria from question, reads the catalog and returns the
// matching listings. Only catalog failures are returned as errors.
func (s *SearchService) Search(ctx context.Context, question string) (*model.SearchResponse, error) {
	startTime := time.Now()
	question = strings.TrimSpace(question)

	criteria := s.extractor.Extract(ctx, question)

	listings, err := AggregatePages(ctx, s.source, s.options.MaxPages, s.options.PerPage)
	if err != nil {
		return nil, err
	}

	matched := FilterListings(listings, criteria)
	observability.ListingsMatched.Observe(float64(len(matched)))

	results := matched
	if s.options.ResultLimit > 0 && len(results) > s.options.ResultLimit {
		results = results[:s.options.ResultLimit]
	}

	took := time.Since(startTime).Milliseconds()
	s.logger.Info("search completed",
		zap.String("pergunta", question),
		zap.Int("fetched", len(listings)),
		zap.Int("matched", len(matched)),
		zap.Int64("took_ms", took),
	)

	return &model.SearchResponse{
		Pergunta:  question,
		Criterios: criteria,
		Total:     len(matched),
		Imoveis:   results,
		Took:      took,
	}, nil
}
