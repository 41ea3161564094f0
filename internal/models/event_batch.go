package models

// EventBatch is the raw batch as received by the ingestion endpoint. It is persisted
// before normalization so that a retried request with the same idempotency key is detected.
type EventBatch struct {
	BatchID string      `json:"batchId"`
	Service string      `json:"service"`
	Events  []*RawEvent `json:"events"`
}
