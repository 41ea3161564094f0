package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/shared/metrics"
	"visit-analytics/internal/shared/svcerrors"
	"visit-analytics/internal/shared/ulid"
	"visit-analytics/internal/shared/validators"
	"visit-analytics/internal/stores"
	"visit-analytics/internal/streams"
)

const (
	DefaultMaxBatchBytes = 2 * 1024 * 1024
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID  string          `json:"batchId"`
	Accepted int             `json:"accepted"`
	Rejected []RejectedEvent `json:"rejected"`
}

// RejectedEvent reports an event of the batch that was not rolled up.
type RejectedEvent struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch stores a JSON array of visit events, normalizes each one and publishes
	// the accepted events for rollup. A malformed event is reported in the result and
	// does not fail the batch.
	IngestBatch(ctx context.Context, service string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	normalizer    Normalizer
	batchStore    stores.RawBatchStore
	eventProducer streams.EventProducer
	maxBatchBytes int
	validate      *validators.Validate
}

func NewIngestionService(normalizer Normalizer, batchStore stores.RawBatchStore, eventProducer streams.EventProducer, maxBatchBytes int) IngestionService {
	if maxBatchBytes <= 0 {
		maxBatchBytes = DefaultMaxBatchBytes
	}
	return &ingestionService{
		normalizer:    normalizer,
		batchStore:    batchStore,
		eventProducer: eventProducer,
		maxBatchBytes: maxBatchBytes,
		validate:      validators.New(),
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, service string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting batch with service: %s, idempotency key: %s, format: %s", service, idempotencyKey, format)

	batchID := strings.TrimSpace(idempotencyKey)
	items, err := s.validateEventBatch(service, batchID, format, r)
	if err != nil {
		metricBatchIngestedTotal.WithLabelValues(err.Code).Inc()
		return nil, err
	}

	if batchID == "" {
		batchID = ulid.NewULID()
	}

	result := &IngestResult{
		BatchID:  batchID,
		Rejected: make([]RejectedEvent, 0),
	}

	// decode failures are per event, the rest of the batch is still ingested
	rawEvents := make([]*models.RawEvent, len(items))
	batch := &models.EventBatch{
		BatchID: batchID,
		Service: service,
		Events:  make([]*models.RawEvent, 0, len(items)),
	}
	for i, item := range items {
		var raw models.RawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			s.reject(ctx, result, i, errMalformedEvent(fmt.Errorf("%w: %s", ErrMalformedEvent, err.Error())))
			continue
		}
		rawEvents[i] = &raw
		batch.Events = append(batch.Events, &raw)
	}

	// Store the raw batch
	if err := s.batchStore.Put(ctx, batch); err != nil {
		if errors.Is(err, stores.ErrEventBatchAlreadyExist) {
			svcError := errEventBatchAlreadyProcessed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		svcError := errInternalRawBatchStoreFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	accepted := make([]*models.Event, 0, len(batch.Events))
	for i, raw := range rawEvents {
		if raw == nil {
			continue
		}
		event, err := s.normalizer.Normalize(service, raw)
		if err != nil {
			s.reject(ctx, result, i, errMalformedEvent(err))
			continue
		}
		metricEventNormalizedTotal.WithLabelValues(metrics.ValueNoError).Inc()
		accepted = append(accepted, event)
	}

	if len(accepted) > 0 {
		if err := s.eventProducer.Produce(ctx, batchID, accepted); err != nil {
			svcError := errInternalEventPublisherFailed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
	}

	result.Accepted = len(accepted)
	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Debug().
		Str(loggers.FieldBatchID, batchID).
		Msgf("ingested batch: %d accepted, %d rejected", result.Accepted, len(result.Rejected))
	return result, nil
}

func (s *ingestionService) reject(ctx context.Context, result *IngestResult, index int, svcErr *svcerrors.ServiceError) {
	loggers.Ctx(ctx).Debug().
		Int(loggers.FieldEventIndex, index).
		Str(loggers.FieldErrorCode, svcErr.Code).
		Msg(svcErr.Message)
	metricEventNormalizedTotal.WithLabelValues(svcErr.Code).Inc()
	result.Rejected = append(result.Rejected, RejectedEvent{Index: index, Reason: svcErr.Message})
}

func (s *ingestionService) validateEventBatch(service string, batchID string, format string, r io.Reader) ([]json.RawMessage, *svcerrors.ServiceError) {
	if s.validate.Var(service, validators.TagIdentifier) != nil {
		return nil, errValidationFailed(fmt.Sprintf("invalid service name: %q", service), nil)
	}
	if batchID != "" && s.validate.Var(batchID, validators.TagIdentifier) != nil {
		return nil, errValidationFailed(fmt.Sprintf("invalid idempotency key: %q", batchID), nil)
	}

	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	// Normalize format to lowercase for comparison
	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	buf, err := s.readWithLimit(r)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(buf, &items); err != nil {
		return nil, errValidationFailed("invalid json: expected an array of events", err)
	}

	if len(items) == 0 {
		return nil, errValidationFailed("events cannot be empty", nil)
	}

	return items, nil
}

// readWithLimit reads up to maxBatchBytes+1 bytes from r and rejects a body larger than maxBatchBytes.
func (s *ingestionService) readWithLimit(r io.Reader) ([]byte, *svcerrors.ServiceError) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(s.maxBatchBytes)+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > s.maxBatchBytes {
		return nil, errValidationFailed(fmt.Sprintf("batch too large: must be <= %d bytes", s.maxBatchBytes), nil)
	}
	return buf, nil
}
