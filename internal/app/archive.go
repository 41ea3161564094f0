package app

import (
	"fmt"

	"visit-analytics/internal/shared/configs"
	"visit-analytics/internal/shared/filestorages"
	"visit-analytics/internal/stores"
)

// OpenDayArchive opens the summaries written when days leave the retention window.
// It reads the same file storage root a running server archives into.
func OpenDayArchive(config *configs.Config) (stores.DayArchiveStore, error) {
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file storage: %w", err)
	}
	return stores.NewDayArchiveStore(fileStorage), nil
}
