package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imovel-searcher/internal/model"
	"imovel-searcher/internal/observability"
	"imovel-searcher/internal/repository"
	"imovel-searcher/internal/service"
)

const (
	msgInvalidBody   = `Body deve ser JSON com campo "pergunta".`
	msgMissingQuery  = `Envie "pergunta" com o texto da busca (ex: "apartamento 2 quartos em Copacabana").`
	msgSearchFailed  = "Erro ao buscar imóveis."
	msgSearchMethods = `Envie POST com body JSON: { "pergunta": "sua pergunta sobre o imóvel" }`
)

// SearchHandler handles natural-language search requests
type SearchHandler struct {
	searchService *service.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles POST /api/v1/buscar
func (h *SearchHandler) Search(c *gin.Context) {
	start := time.Now()
	status := "ok"
	defer func() {
		observability.SearchRequestsTotal.WithLabelValues(status).Inc()
		observability.SearchRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	var req model.SearchRequest
	// An empty body reads as {} and is reported as a missing question
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		status = "bad_request"
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Bad Request", Message: msgInvalidBody})
		return
	}

	question := req.Question()
	if strings.TrimSpace(question) == "" {
		status = "bad_request"
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Bad Request", Message: msgMissingQuery})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), question)
	if err != nil {
		status = "upstream_error"
		h.logger.Error("search failed",
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("pergunta", question),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: "Bad Gateway", Message: upstreamMessage(err, msgSearchFailed)})
		return
	}

	c.JSON(http.StatusOK, response)
}

// upstreamMessage is the message shown to the client for a failed upstream
// call. Catalog errors keep their "API imóveis: ..." text.
func upstreamMessage(err error, fallback string) string {
	var upstreamErr *repository.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
