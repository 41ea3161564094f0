package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/filestorages"
)

var (
	ErrEventBatchAlreadyExist = errors.New("event batch already exists")
)

// RawBatchStore keeps every accepted request body, keyed by service and batch ID. Put is a
// create-if-not-exists operation, so a retried request carrying the same idempotency key is
// detected: the first Put stores the batch, any later Put returns ErrEventBatchAlreadyExist.
//
//go:generate mockgen -source=raw_batch_store.go -destination=./mocks/raw_batch_store_mock.go -package=mocks
type RawBatchStore interface {
	Put(ctx context.Context, batch *models.EventBatch) error
}

type rawBatchStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewRawBatchStore(fileStorage filestorages.FileStorage) RawBatchStore {
	return &rawBatchStore{fileStorage: fileStorage, dir: "raw-batches"}
}

func (s *rawBatchStore) Put(ctx context.Context, batch *models.EventBatch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal event batch: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", s.dir, batch.Service, batch.BatchID)

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrEventBatchAlreadyExist
		}
		return fmt.Errorf("failed to put event batch: %w", err)
	}
	return nil
}
