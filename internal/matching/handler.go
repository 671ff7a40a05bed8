// internal/matching/handler.go
package matching

import (
	"context"
	"time"

	cerrors "question-service/internal/common/errors"
	"question-service/internal/common/logger"
	"question-service/internal/common/metrics"
	"question-service/internal/common/observability"
	"question-service/internal/questions"
)

// Caller-facing reply messages. Internal failure detail never crosses the
// bus; these are the only strings the pairing service sees.
const (
	msgQuestionFound = "Question found successfully."
	msgNoMatch       = "no questions found matching the criteria."
	msgInternalError = "internal error while selecting a question."
)

// Alerter receives the critical notification when a reply cannot be
// published. Alerting only; the failed publish is never retried here.
type Alerter interface {
	PublishAlert(ctx context.Context, subject, message string) error
}

// Handler orchestrates one match request: decode, validate, select, reply.
// It holds no per-request state; concurrent invocations are independent.
type Handler struct {
	config    *Config
	store     questions.Store
	catalog   questions.Catalog
	publisher ReplyPublisher
	alerter   Alerter // optional
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(
	config *Config,
	store questions.Store,
	catalog questions.Catalog,
	publisher ReplyPublisher,
	alerter Alerter,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:    config,
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		alerter:   alerter,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "match-handler"}),
	}
}

// HandleDelivery processes one raw bus message. A malformed envelope is
// logged and dropped: with no trustworthy correlation id there is nothing
// safe to reply to, and a bad envelope is a producer bug, not a business
// error the caller is waiting on. Everything past decoding produces exactly
// one reply.
func (h *Handler) HandleDelivery(ctx context.Context, raw []byte) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	req, decErr := DecodeRequest(raw)
	if decErr != nil {
		h.logger.Warn("discarding malformed match request", map[string]interface{}{
			"errorCode": string(decErr.Code),
			"reason":    decErr.Message,
			"bytes":     len(raw),
		})
		metrics.MatchRequestsDiscarded.Inc()
		h.obs.RecordRequestProcessed(ctx, "discarded")
		return
	}

	reply := h.execute(ctx, req)
	h.emit(ctx, req, reply)

	metrics.MatchRequestsHandled.WithLabelValues(reply.Status).Inc()
	metrics.MatchRequestDuration.Observe(time.Since(start).Seconds())
	h.obs.RecordRequestProcessed(ctx, reply.Status)
	h.obs.RecordRequestDuration(ctx, time.Since(start), reply.Status)
}

// execute runs validation and selection and always returns a reply carrying
// the request's correlation id. Every failure below the publish tier funnels
// into a status=error reply here.
func (h *Handler) execute(ctx context.Context, req *MatchRequest) *MatchReply {
	difficulty, topic, valErr := ValidateCriteria(ctx, h.catalog, req.Meta)
	if valErr != nil {
		if valErr.Code == cerrors.ErrCodeInvalidCriteria {
			h.logger.Info("rejecting match request with invalid criteria", map[string]interface{}{
				"correlationId": req.CorrelationID,
				"difficulty":    req.Meta.Difficulty,
				"topics":        req.Meta.Topics,
				"reason":        valErr.Message,
			})
			return h.errorReply(req, valErr.Message)
		}
		h.logger.WithError(valErr).Error("criteria validation hit an infrastructure fault", map[string]interface{}{
			"correlationId": req.CorrelationID,
		})
		return h.errorReply(req, msgInternalError)
	}

	question, err := h.store.FindRandomMatch(ctx, difficulty, topic)
	if err != nil {
		// full detail stays server-side; the reply carries a generic message
		h.logger.WithError(err).Error("question selection failed", map[string]interface{}{
			"correlationId": req.CorrelationID,
			"difficulty":    string(difficulty),
			"topic":         topic,
		})
		return h.errorReply(req, msgInternalError)
	}
	if question == nil {
		h.logger.Info("no question matched the criteria", map[string]interface{}{
			"correlationId": req.CorrelationID,
			"difficulty":    string(difficulty),
			"topic":         topic,
		})
		return h.errorReply(req, msgNoMatch)
	}

	return &MatchReply{
		CorrelationID: req.CorrelationID,
		Status:        StatusSuccess,
		Data:          questions.FormatQuestion(question),
		Message:       msgQuestionFound,
	}
}

// emit publishes the reply. A publish failure is the single unrecoverable
// condition: the caller is left waiting on a correlation id that will never
// resolve, so it is logged at critical severity and alerted, with no retry.
func (h *Handler) emit(ctx context.Context, req *MatchRequest, reply *MatchReply) {
	pubCtx, cancel := context.WithTimeout(ctx, h.config.PublishTimeout)
	defer cancel()

	if err := h.publisher.PublishReply(pubCtx, reply); err != nil {
		h.logger.WithError(err).Critical("failed to notify caller", map[string]interface{}{
			"correlationId": req.CorrelationID,
			"status":        reply.Status,
		})
		metrics.ReplyPublishFailures.Inc()
		if h.alerter != nil {
			if alertErr := h.alerter.PublishAlert(ctx, "question-service reply publish failure",
				"correlationId "+req.CorrelationID+" could not be answered: "+err.Error()); alertErr != nil {
				h.logger.WithError(alertErr).Error("critical alert delivery failed", nil)
			}
		}
		return
	}

	metrics.RepliesPublished.WithLabelValues(reply.Status).Inc()
}

func (h *Handler) errorReply(req *MatchRequest, message string) *MatchReply {
	return &MatchReply{
		CorrelationID: req.CorrelationID,
		Status:        StatusError,
		Data:          nil,
		Message:       message,
	}
}
