package events

import (
	"time"

	"visit-analytics/internal/models"
)

// VisitEvent is one normalized visit travelling from the ingestion front end to the
// rollup workers. Events of the same service and day share a partition key, so they are
// applied by a single worker in the order they were published.
//
// Example JSON:
//
//	{
//	  "service": "blog",
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "timestamp": "2025-12-28T18:03:15Z",
//	  "ip": "10.0.0.1",
//	  "path": "/posts/hello",
//	  "browser": "Firefox",
//	  "platform": "Linux",
//	  "generationTime": 0.042
//	}
type VisitEvent struct {
	Service        string    `json:"service"`
	BatchID        string    `json:"batchId"`
	Timestamp      time.Time `json:"timestamp"`
	IP             string    `json:"ip"`
	Path           string    `json:"path"`
	Browser        string    `json:"browser"`
	Platform       string    `json:"platform"`
	GenerationTime *float64  `json:"generationTime"`
}

func NewVisitEvent(batchID string, event *models.Event) VisitEvent {
	return VisitEvent{
		Service:        event.Service,
		BatchID:        batchID,
		Timestamp:      event.Timestamp,
		IP:             event.IP,
		Path:           event.Path,
		Browser:        event.Browser,
		Platform:       event.Platform,
		GenerationTime: event.GenerationTime,
	}
}

// PartitionKey identifies the day aggregate the event rolls up into.
func (e VisitEvent) PartitionKey() string {
	return e.Service + "/" + models.DayOf(e.Timestamp).String()
}

func (e VisitEvent) Event() *models.Event {
	return &models.Event{
		Service:        e.Service,
		Timestamp:      e.Timestamp,
		IP:             e.IP,
		Path:           e.Path,
		Browser:        e.Browser,
		Platform:       e.Platform,
		GenerationTime: e.GenerationTime,
	}
}
