package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/metrics"
	"github.com/goodphonefoundation/thecloudsucks/internal/service"
	"github.com/goodphonefoundation/thecloudsucks/internal/sync"
)

const trueString = "true"

// Syncer triggers index rebuilds. *sync.Runner satisfies it.
type Syncer interface {
	SyncAll(ctx context.Context, only []string) (*sync.Summary, error)
}

// Handler holds the HTTP request handlers.
type Handler struct {
	search     *service.SearchService
	webhook    *service.WebhookService
	syncer     Syncer
	maxPerPage int
	logger     logger.Logger
}

// NewHandler creates a handler instance.
func NewHandler(search *service.SearchService, webhook *service.WebhookService, syncer Syncer, maxPerPage int, log logger.Logger) *Handler {
	return &Handler{
		search:     search,
		webhook:    webhook,
		syncer:     syncer,
		maxPerPage: maxPerPage,
		logger:     log,
	}
}

// CarrierSearch handles GET /api/v1/search/carriers. Engine unavailability
// is a 200 with an error message in the payload, so the site renders an
// empty state instead of breaking.
func (h *Handler) CarrierSearch(c *gin.Context) {
	req := h.parseCarrierParams(c)

	result, err := h.search.CarrierSearch(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Carrier search failed",
			logger.Error(err),
			logger.String("query", req.Query),
		)
		metrics.SearchRequests.WithLabelValues("carriers", "error").Inc()
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Code:      "SEARCH_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	outcome := "success"
	if result.Error != "" {
		outcome = "unavailable"
	}
	metrics.SearchRequests.WithLabelValues("carriers", outcome).Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseCarrierParams(c *gin.Context) *service.CarrierSearchRequest {
	req := &service.CarrierSearchRequest{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		req.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		req.PerPage = perPage
	}
	if req.PerPage > h.maxPerPage {
		req.PerPage = h.maxPerPage
	}
	req.MVNOOnly = c.Query("mvno_only") == trueString
	req.ESIMSupport = c.Query("esim_support") == trueString
	req.FiveG = c.Query("five_g") == trueString
	req.PrepaidAnonymous = c.Query("prepaid_anonymous") == trueString
	req.NoContract = c.Query("no_contract") == trueString
	return req
}

// GlobalSearch handles GET /api/v1/search/global.
func (h *Handler) GlobalSearch(c *gin.Context) {
	limit := 0
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = parsed
	}

	result, err := h.search.GlobalSearch(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.logger.Error("Global search failed", logger.Error(err))
		metrics.SearchRequests.WithLabelValues("global", "error").Inc()
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Code:      "SEARCH_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	outcome := "success"
	if result.Error != "" {
		outcome = "unavailable"
	}
	metrics.SearchRequests.WithLabelValues("global", outcome).Inc()
	c.JSON(http.StatusOK, result)
}

type syncRequest struct {
	Collections []string `json:"collections"`
}

// TriggerSync handles POST /api/v1/sync. The body is optional; when present
// it may restrict the run to named collections.
func (h *Handler) TriggerSync(c *gin.Context) {
	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     "Invalid request body: " + err.Error(),
				Code:      "INVALID_REQUEST",
				Timestamp: time.Now(),
			})
			return
		}
	}

	summary, err := h.syncer.SyncAll(c.Request.Context(), req.Collections)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type discourseWebhook struct {
	TopicID json.Number    `json:"topic_id"`
	Post    map[string]any `json:"post"`
}

// DiscourseWebhook handles POST /api/v1/webhooks/discourse.
func (h *Handler) DiscourseWebhook(c *gin.Context) {
	var payload discourseWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Missing required webhook data",
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
		})
		return
	}

	topicID, err := payload.TopicID.Int64()
	if payload.TopicID.String() == "" || err != nil || payload.Post == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Missing required webhook data",
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
		})
		return
	}

	result, processErr := h.webhook.RefreshLatestComment(c.Request.Context(), topicID)
	if processErr != nil {
		h.logger.Error("Webhook processing failed",
			logger.Error(processErr),
			logger.Int64("topic_id", topicID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Failed to process webhook",
			Code:      "WEBHOOK_ERROR",
			Timestamp: time.Now(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.search.HealthCheck(c.Request.Context())
	if status.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ReadinessCheck handles readiness check requests.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	h.HealthCheck(c)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
