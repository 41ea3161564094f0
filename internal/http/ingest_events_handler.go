package http

import (
	"net/http"

	"visit-analytics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type ingestEventsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestEventsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestEventsHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /services/{service}/events requests.
func (h *ingestEventsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	service := serviceParam(r)
	result, err := h.ingestionService.IngestBatch(r.Context(), service, idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}
