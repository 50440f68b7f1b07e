package restapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_search/internal/app/port"
	"account_search/internal/domain/entity"
	"account_search/internal/pkg/metrics"
)

// APISearchResponse is the body of a successful search. Accounts is never
// null; Errors carries the per-group and per-account failures recorded
// while the search ran.
type APISearchResponse struct {
	Accounts      []entity.AccountSummary `json:"accounts"`
	Errors        []entity.SearchError    `json:"errors,omitempty"`
	StatusMessage string                  `json:"status_message"`
}

// APIErrorResponse is the body of a failed search.
type APIErrorResponse struct {
	Error  string               `json:"error"`
	Errors []entity.SearchError `json:"errors,omitempty"`
}

// SearchHandler handles HTTP requests for wallet searches.
type SearchHandler struct {
	resolver      port.IdentityResolver
	searchService port.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(resolver port.IdentityResolver, searchService port.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		resolver:      resolver,
		searchService: searchService,
		logger:        logger.Named("SearchHandler"),
	}
}

// GetSearchHandler handles GET /api/v1/search?address=<wallet-or-domain>.
func (h *SearchHandler) GetSearchHandler(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	input := strings.TrimSpace(c.Query("address"))
	if input == "" {
		metrics.SearchesTotal.WithLabelValues("invalid_input").Inc()
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "No address provided"})
		return
	}

	wallet, err := h.resolver.Resolve(ctx, input)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			metrics.SearchesTotal.WithLabelValues("invalid_input").Inc()
			c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "Invalid address provided"})
			return
		}
		h.logger.Error("Failed to resolve address", zap.String("input", input), zap.Error(err))
		metrics.SearchesTotal.WithLabelValues("upstream_error").Inc()
		c.JSON(http.StatusBadGateway, APIErrorResponse{Error: "Failed to resolve address"})
		return
	}

	result, err := h.searchService.Search(ctx, wallet)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.GroupFailuresTotal.Add(float64(countGroupFailures(result.Errors)))
	if err != nil {
		h.logger.Error("Search failed", zap.String("wallet", wallet), zap.Error(err))
		metrics.SearchesTotal.WithLabelValues("upstream_error").Inc()
		if errors.Is(err, entity.ErrUpstreamUnavailable) {
			c.JSON(http.StatusBadGateway, APIErrorResponse{
				Error:  "Upstream data sources unavailable",
				Errors: result.Errors,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, APIErrorResponse{Error: "Search failed"})
		return
	}

	response := APISearchResponse{
		Accounts: result.Accounts,
		Errors:   result.Errors,
	}

	if len(result.Errors) > 0 {
		metrics.SearchesTotal.WithLabelValues("partial").Inc()
		response.StatusMessage = "Accounts retrieved. Some groups or accounts encountered errors."
	} else if len(result.Accounts) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		response.StatusMessage = "No lending accounts found."
	} else {
		metrics.SearchesTotal.WithLabelValues("ok").Inc()
		response.StatusMessage = "Accounts retrieved successfully."
	}

	c.JSON(http.StatusOK, response)
}

// countGroupFailures counts the group-scoped error records; account-scoped
// failures carry the account address and are excluded.
func countGroupFailures(errs []entity.SearchError) int {
	n := 0
	for _, e := range errs {
		if e.Account == "" {
			n++
		}
	}
	return n
}
