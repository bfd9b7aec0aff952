package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imovel-searcher/internal/model"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	msgListingsFailed  = "Erro ao consultar API de imóveis"
	msgListingsMethods = "Use GET com ?page=1&per_page=20"
)

// RawPageFetcher returns one catalog page exactly as the upstream sent it
type RawPageFetcher interface {
	FetchRaw(ctx context.Context, page, perPage int) ([]byte, error)
}

// ListingsHandler exposes raw catalog pages
type ListingsHandler struct {
	source RawPageFetcher
	logger *zap.Logger
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(source RawPageFetcher, logger *zap.Logger) *ListingsHandler {
	return &ListingsHandler{
		source: source,
		logger: logger,
	}
}

// List handles GET /api/v1/imoveis?page=1&per_page=20
func (h *ListingsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", defaultPerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	raw, err := h.source.FetchRaw(c.Request.Context(), page, perPage)
	if err != nil {
		h.logger.Error("listings fetch failed",
			zap.String("request_id", RequestIDFromContext(c)),
			zap.Int("page", page),
			zap.Int("per_page", perPage),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: "Bad Gateway", Message: upstreamMessage(err, msgListingsFailed)})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// queryInt reads an integer query parameter; missing or invalid values give def
func queryInt(c *gin.Context, key string, def int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return value
}
