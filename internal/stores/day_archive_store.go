package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/filestorages"
)

const compactDayLayout = "20060102"

var (
	ErrDayArchiveNotFound = errors.New("day archive not found")
)

// DayArchiveStore persists the summary of a day leaving the open set. Archiving the same
// day again replaces the previous summary.
//
//go:generate mockgen -source=day_archive_store.go -destination=./mocks/day_archive_store_mock.go -package=mocks
type DayArchiveStore interface {
	Archive(ctx context.Context, summary *models.DaySummary) error
	Get(ctx context.Context, service string, day models.Day) (*models.DaySummary, error)
	// List returns the archived days of service in ascending order.
	List(ctx context.Context, service string) ([]models.Day, error)
}

type dayArchiveStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewDayArchiveStore(fileStorage filestorages.FileStorage) DayArchiveStore {
	return &dayArchiveStore{fileStorage: fileStorage, dir: "day-archives"}
}

func (s *dayArchiveStore) Archive(ctx context.Context, summary *models.DaySummary) error {
	jsonData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal day summary: %w", err)
	}
	key := s.getKey(summary.Service, summary.Date)
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put day summary: %w", err)
	}
	return nil
}

func (s *dayArchiveStore) Get(ctx context.Context, service string, day models.Day) (*models.DaySummary, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(service, day))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrDayArchiveNotFound
		}
		return nil, fmt.Errorf("failed to get day summary: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read day summary: %w", err)
	}
	var summary models.DaySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal day summary: %w", err)
	}
	return &summary, nil
}

func (s *dayArchiveStore) List(ctx context.Context, service string) ([]models.Day, error) {
	keys, err := s.fileStorage.List(ctx, path.Join(s.dir, service))
	if err != nil {
		return nil, fmt.Errorf("failed to list day summaries: %w", err)
	}

	days := make([]models.Day, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSuffix(path.Base(key), ".json")
		t, err := time.Parse(compactDayLayout, name)
		if err != nil {
			// not written by Archive
			continue
		}
		days = append(days, models.DayOf(t))
	}
	return days, nil
}

func (s *dayArchiveStore) getKey(service string, day models.Day) string {
	return fmt.Sprintf("%s/%s/%s.json", s.dir, service, day.FormatCompact())
}
