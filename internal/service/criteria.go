package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/observability"
	"imovel-searcher/internal/utils"
)

// criteriaPrompt constrains the model to the five criteria fields.
const criteriaPrompt = `Você é um assistente que extrai critérios de busca de imóveis a partir da pergunta do usuário.
Responda APENAS com um JSON válido, sem markdown, sem explicação, no formato:
{"quartos": número ou null, "bairro": string ou null, "tipo": string ou null (ex: apartamento, casa, sala comercial), "preco_max": número ou null (valor máximo em reais), "termos": array de palavras-chave ou []}
Extraia apenas o que o usuário mencionar. Use null para o que não for dito. Para "termos", coloque palavras importantes da pergunta (ex: "copacabana", "varanda", "garagem").`

// CriteriaExtractor turns a question into search criteria. It asks the
// language model when one is configured and falls back to FallbackCriteria
// on any failure; Extract never returns an error.
type CriteriaExtractor struct {
	aiClient CompletionClient
	logger   *zap.Logger
}

// NewCriteriaExtractor creates a new extractor. A nil client means the
// heuristic is always used.
func NewCriteriaExtractor(aiClient CompletionClient, logger *zap.Logger) *CriteriaExtractor {
	return &CriteriaExtractor{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Extract returns the criteria of query
func (e *CriteriaExtractor) Extract(ctx context.Context, query string) *model.Criteria {
	question := strings.TrimSpace(query)
	if question == "" {
		observability.CriteriaExtractions.WithLabelValues(observability.StrategyEmpty).Inc()
		return model.EmptyCriteria()
	}

	if e.aiClient == nil {
		observability.CriteriaExtractions.WithLabelValues(observability.StrategyHeuristic).Inc()
		return FallbackCriteria(query)
	}

	criteria, err := e.extractWithAI(ctx, question)
	if err != nil {
		e.logger.Warn("AI criteria extraction failed, using heuristic",
			zap.String("query", question),
			zap.Error(err),
		)
		observability.CriteriaExtractions.WithLabelValues(observability.StrategyFallback).Inc()
		return FallbackCriteria(query)
	}

	observability.CriteriaExtractions.WithLabelValues(observability.StrategyModel).Inc()
	return criteria
}

// extractWithAI asks the model and re-validates its answer
func (e *CriteriaExtractor) extractWithAI(ctx context.Context, question string) (*model.Criteria, error) {
	content, err := e.aiClient.CompleteJSON(ctx, criteriaPrompt, question)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := utils.ParseModelJSON(content, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("AI response is not a JSON object: %s", content)
	}

	raw := rawCriteria{
		Quartos:  fields["quartos"],
		Bairro:   fields["bairro"],
		Tipo:     fields["tipo"],
		PrecoMax: fields["preco_max"],
		Termos:   fields["termos"],
	}
	criteria := raw.validate()
	e.logger.Debug("AI criteria extracted",
		zap.String("query", question),
		zap.Any("criteria", criteria),
	)
	return criteria, nil
}

// rawCriteria keeps every field undecoded so that a badly typed field
// degrades on its own instead of failing the whole answer.
type rawCriteria struct {
	Quartos  json.RawMessage
	Bairro   json.RawMessage
	Tipo     json.RawMessage
	PrecoMax json.RawMessage
	Termos   json.RawMessage
}

func (r rawCriteria) validate() *model.Criteria {
	criteria := model.EmptyCriteria()

	// Counts that do not fit an int32 are as meaningless as negative ones.
	if n := rawNumber(r.Quartos); n != nil && *n <= math.MaxInt32 {
		q := int(*n)
		criteria.Quartos = &q
	}
	criteria.PrecoMax = rawNumber(r.PrecoMax)
	criteria.Bairro = rawString(r.Bairro)
	criteria.Tipo = rawString(r.Tipo)
	criteria.Termos = rawTerms(r.Termos)

	return criteria
}

// rawNumber accepts a non-negative JSON number or a string carrying digits.
func rawNumber(data json.RawMessage) *float64 {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	n := coerceNumber(v)
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

func rawString(data json.RawMessage) *string {
	if len(data) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// rawTerms keeps the string elements of a JSON array. Anything that is not
// an array yields no terms.
func rawTerms(data json.RawMessage) []string {
	var items []any
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return []string{}
	}
	terms := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			terms = append(terms, strings.TrimSpace(s))
		}
	}
	return model.UniqueTerms(terms)
}
