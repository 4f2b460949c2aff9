package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/infrastructure/logger"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the optional client key of a create request
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayedHeader marks a response replayed from the store
	IdempotentReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	// TTL is how long a successful response is replayed
	TTL time.Duration
	// PendingTTL bounds a reservation whose request never finishes
	PendingTTL time.Duration
	Logger     *zap.Logger
}

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored 2xx response of a request repeated with the
// same Idempotency-Key. A repeat while the first request is still running gets
// 409; a failed request releases the key so the client can retry. Store
// errors fail open: the request runs without replay protection.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = shared.DefaultIdempotencyConfig().TTL
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeValidation, "Idempotency-Key must be at most 255 characters", GetRequestID(c)))
			return
		}

		ctx := c.Request.Context()
		log := logger.Ctx(ctx, cfg.Logger).With(zap.String("idempotency_key", key))
		scoped := c.Request.Method + " " + c.FullPath() + " " + key

		reserved, err := cfg.Store.Reserve(ctx, scoped, cfg.PendingTTL)
		if err != nil {
			log.Warn("Idempotency store unavailable, running request unprotected", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			replayOrReject(c, cfg.Store, scoped, log)
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		// the request context may already be cancelled; the outcome must still be recorded
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err := cfg.Store.Release(storeCtx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err == nil {
			err = cfg.Store.Complete(storeCtx, scoped, payload, cfg.TTL)
		}
		if err != nil {
			log.Warn("Failed to record idempotent response", zap.Error(err))
		}
	}
}

func replayOrReject(c *gin.Context, store shared.IdempotencyStore, key string, log *logger.ContextLogger) {
	state, payload, err := store.Lookup(c.Request.Context(), key)
	if err != nil {
		log.Warn("Idempotency lookup failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
		return
	}

	switch state {
	case shared.IdempotencyCompleted:
		var stored storedResponse
		if err := json.Unmarshal(payload, &stored); err != nil {
			log.Error("Corrupt idempotent response, discarding key", zap.Error(err))
			if err := store.Discard(c.Request.Context(), key); err != nil {
				log.Warn("Failed to discard idempotency key", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Stored response for this Idempotency-Key is unreadable; retry the request", GetRequestID(c)))
			return
		}
		c.Header(IdempotentReplayedHeader, "true")
		c.Data(stored.Status, stored.ContentType, stored.Body)
		c.Abort()
		return
	case shared.IdempotencyAbsent:
		// expired between Reserve and Lookup
		c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeConflict, "Idempotency key expired while checking it; retry the request", GetRequestID(c)))
		return
	}

	c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeConflict, "A request with this Idempotency-Key is still being processed", GetRequestID(c)))
}
