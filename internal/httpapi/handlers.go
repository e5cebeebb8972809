package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/ingest"
	"voice-call-dashboard/internal/metrics"
	"voice-call-dashboard/pkg/logger"
	"voice-call-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MigrateFunc applies the storage schema. It must be idempotent.
type MigrateFunc func(ctx context.Context) error

// Handlers groups HTTP handlers for dependency injection.
// Handlers stay thin and delegate to internal services.
type Handlers struct {
	Calls   calls.Store
	Leads   calls.LeadStore
	Ingest  *ingest.Service
	Metrics *metrics.Service

	// Migrate is nil when the backend needs no schema.
	Migrate MigrateFunc

	clock      func() time.Time
	schemaOnce *utils.InitOnce
}

func NewHandlers(h Handlers) *Handlers {
	out := h
	out.clock = time.Now
	out.schemaOnce = &utils.InitOnce{}
	return &out
}

func (h *Handlers) now() time.Time {
	if h.clock == nil {
		return time.Now()
	}
	return h.clock()
}

func (h *Handlers) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

// ensureSchema applies the schema once per process. A failure is logged and retried on
// the next request; it never fails the current one.
func (h *Handlers) ensureSchema(c *gin.Context) {
	if h.Migrate == nil || h.schemaOnce == nil {
		return
	}
	err := h.schemaOnce.Do(c.Request.Context(), func(ctx context.Context) error {
		if err := h.Migrate(ctx); err != nil {
			return err
		}
		logger.FromGin(c).Info("database initialized")
		return nil
	})
	if err != nil {
		logger.FromGin(c).Error("database initialization failed", "err", err)
	}
}

// --- Webhook ---

type processedCounts struct {
	Total   int `json:"total"`
	Saved   int `json:"saved"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type webhookResponse struct {
	RequestID    string             `json:"requestId"`
	Success      bool               `json:"success"`
	Processed    processedCounts    `json:"processed"`
	DurationMs   int64              `json:"durationMs"`
	Timestamp    string             `json:"timestamp"`
	Errors       []ingest.ItemError `json:"errors,omitempty"`
	ErrorCount   int                `json:"errorCount,omitempty"`
	ErrorSummary string             `json:"errorSummary,omitempty"`
}

type errorResponse struct {
	RequestID string `json:"requestId"`
	Error     string `json:"error"`
	Details   any    `json:"details"`
	Timestamp string `json:"timestamp"`
}

type internalErrorDetails struct {
	ErrorID   string `json:"errorId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (h *Handlers) abortWithError(c *gin.Context, status int, msg string, details any) {
	if details == nil {
		details = "No additional details"
	}
	logger.FromGin(c).Warn("request rejected", "status", status, "error", msg, "details", details)
	c.AbortWithStatusJSON(status, errorResponse{
		RequestID: logger.RequestID(c),
		Error:     msg,
		Details:   details,
		Timestamp: h.timestamp(),
	})
}

// abortInternal answers 500 with an opaque error id. msg is logged and echoed as the message.
func (h *Handlers) abortInternal(c *gin.Context, msg string) {
	errID := fmt.Sprintf("err_%d", h.now().UnixMilli())
	logger.FromGin(c).Error("critical error processing webhook", "error_id", errID, "error", msg)
	ts := h.timestamp()
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		RequestID: logger.RequestID(c),
		Error:     "Internal server error",
		Details:   internalErrorDetails{ErrorID: errID, Message: msg, Timestamp: ts},
		Timestamp: ts,
	})
}

// requestErrorMessage maps body decoding failures to the client-facing message.
func requestErrorMessage(err error) (string, any) {
	switch {
	case errors.Is(err, ingest.ErrEmptyBody):
		return "Empty request body", nil
	case errors.Is(err, ingest.ErrEmptyBatch):
		return "No call data provided", nil
	case errors.Is(err, ingest.ErrInvalidJSON):
		return "Invalid JSON payload", err.Error()
	default:
		return "Invalid request", err.Error()
	}
}

// ReceiveWebhook ingests one call event or an array of them.
//
// Status: 200 when nothing failed, 207 on partial success, 400 when nothing could be
// stored or the body is unusable, 500 on an unexpected internal failure.
func (h *Handlers) ReceiveWebhook(c *gin.Context) {
	start := h.now()
	log := logger.FromGin(c)

	defer func() {
		if p := recover(); p != nil {
			h.abortInternal(c, fmt.Sprint(p))
		}
	}()

	if h.Ingest == nil {
		h.abortInternal(c, "ingest service not configured")
		return
	}

	h.ensureSchema(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.abortWithError(c, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}
	log.Debug("webhook body received", "bytes", len(body))

	items, err := ingest.DecodeBody(body)
	if err != nil {
		msg, details := requestErrorMessage(err)
		h.abortWithError(c, http.StatusBadRequest, msg, details)
		return
	}

	res := h.Ingest.Process(c.Request.Context(), items)

	resp := webhookResponse{
		RequestID: logger.RequestID(c),
		Success:   res.Success(),
		Processed: processedCounts{
			Total:   res.Total,
			Saved:   res.Saved,
			Failed:  res.Failed,
			Skipped: res.Skipped,
		},
		DurationMs: h.now().Sub(start).Milliseconds(),
		Timestamp:  h.timestamp(),
	}
	if len(res.Errors) > 0 {
		resp.Errors = res.Errors
		resp.ErrorCount = len(res.Errors)
		resp.ErrorSummary = fmt.Sprintf("%d of %d calls failed to process", len(res.Errors), res.Total)
	}
	log.Info("webhook processed",
		"total", res.Total, "saved", res.Saved, "failed", res.Failed, "skipped", res.Skipped,
		"duration_ms", resp.DurationMs)
	c.JSON(res.StatusCode(), resp)
}

// --- Reads ---

type listResponse[T any] struct {
	RequestID string `json:"requestId"`
	Success   bool   `json:"success"`
	Count     int    `json:"count"`
	Data      []T    `json:"data"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newListResponse[T any](c *gin.Context, h *Handlers, res calls.ReadResult[T], failMsg string) listResponse[T] {
	out := listResponse[T]{
		RequestID: logger.RequestID(c),
		Success:   !res.Degraded,
		Count:     len(res.Items),
		Data:      res.Items,
		Timestamp: h.timestamp(),
	}
	if res.Degraded {
		out.Error = failMsg
		logger.FromGin(c).Error(failMsg, "err", res.Err)
	}
	return out
}

// ListCalls returns every stored call, newest first. Backend failures still answer 200
// with an empty list so the dashboard keeps rendering.
func (h *Handlers) ListCalls(c *gin.Context) {
	h.ensureSchema(c)
	res := calls.ReadCalls(c.Request.Context(), h.Calls)
	c.JSON(http.StatusOK, newListResponse(c, h, res, "Failed to fetch calls"))
}

// ListLeads mirrors ListCalls for the Leads table.
func (h *Handlers) ListLeads(c *gin.Context) {
	res := calls.ReadLeads(c.Request.Context(), h.Leads)
	c.JSON(http.StatusOK, newListResponse(c, h, res, "Failed to fetch leads"))
}

type metricsResponse struct {
	RequestID string            `json:"requestId"`
	Success   bool              `json:"success"`
	Data      metrics.Dashboard `json:"data"`
	Error     string            `json:"error,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// GetMetrics returns the dashboard summary and chart series. Fail-soft like ListCalls.
func (h *Handlers) GetMetrics(c *gin.Context) {
	if h.Metrics == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "metrics not configured"})
		return
	}
	h.ensureSchema(c)
	d, res := h.Metrics.Dashboard(c.Request.Context())
	out := metricsResponse{
		RequestID: logger.RequestID(c),
		Success:   !res.Degraded,
		Data:      d,
		Timestamp: h.timestamp(),
	}
	if res.Degraded {
		out.Error = "Failed to fetch calls"
		logger.FromGin(c).Error("metrics read degraded", "err", res.Err)
	}
	c.JSON(http.StatusOK, out)
}

// --- Setup ---

// SetupDB applies the schema immediately and reports the stored record count.
func (h *Handlers) SetupDB(c *gin.Context) {
	log := logger.FromGin(c)
	if h.Migrate == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "No database connection URL found in environment variables",
		})
		return
	}
	if err := h.Migrate(c.Request.Context()); err != nil {
		log.Error("database setup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	total := 0
	if h.Calls != nil {
		if rows, err := h.Calls.ListAll(c.Request.Context()); err == nil {
			total = len(rows)
		}
	}
	log.Info("database setup completed", "total_records", total)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Database setup completed successfully",
		"totalRecords": total,
	})
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
