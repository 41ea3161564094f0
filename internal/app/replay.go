package app

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/ingestors"
	"visit-analytics/internal/models"
	"visit-analytics/internal/queries"
	"visit-analytics/internal/shared/loggers"

	"golang.org/x/sync/errgroup"
)

const maxReplayLineBytes = 1024 * 1024

// ReplayOptions configures an offline replay of a JSON-lines event file.
type ReplayOptions struct {
	Service         string
	Workers         int
	Limit           int
	CardinalityMode string
	Precision       int
}

// ReplayResult reports how many lines were rolled up and the resulting dashboard.
type ReplayResult struct {
	Accepted  int64             `json:"accepted"`
	Rejected  int64             `json:"rejected"`
	Dashboard *models.Dashboard `json:"dashboard"`
}

type replayLine struct {
	number int
	data   []byte
}

// Replay reads one RawEvent per line from r, normalizes and rolls up the events from
// opts.Workers goroutines into a fresh registry, and returns the dashboard of opts.Service.
// A malformed line is logged and counted; a read error aborts the replay.
func Replay(ctx context.Context, opts ReplayOptions, r io.Reader) (*ReplayResult, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	newCardinality, err := aggregators.NewCardinalityFactory(opts.CardinalityMode, opts.Precision)
	if err != nil {
		return nil, err
	}

	registry := aggregators.NewServiceRegistry(newCardinality, nil)
	defer func() { _ = registry.Close(ctx) }()
	coordinator := aggregators.NewRollupCoordinator(registry, aggregators.RetentionWindow{})
	normalizer := ingestors.NewNormalizer()

	var accepted, rejected atomic.Int64
	lines := make(chan replayLine, opts.Workers*2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxReplayLineBytes)
		number := 0
		for scanner.Scan() {
			number++
			if len(scanner.Bytes()) == 0 {
				continue
			}
			line := replayLine{number: number, data: append([]byte(nil), scanner.Bytes()...)}
			select {
			case lines <- line:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read events: %w", err)
		}
		return nil
	})

	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			for line := range lines {
				if err := gctx.Err(); err != nil {
					return err
				}
				if replayEvent(gctx, opts.Service, normalizer, coordinator, line) {
					accepted.Add(1)
				} else {
					rejected.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard, err := queries.NewQueryService(registry).Dashboard(ctx, opts.Service, opts.Limit, models.DateRange{})
	if err != nil {
		return nil, err
	}
	return &ReplayResult{
		Accepted:  accepted.Load(),
		Rejected:  rejected.Load(),
		Dashboard: dashboard,
	}, nil
}

func replayEvent(ctx context.Context, service string, normalizer ingestors.Normalizer, coordinator aggregators.RollupCoordinator, line replayLine) bool {
	logger := loggers.Ctx(ctx)

	var raw models.RawEvent
	if err := json.Unmarshal(line.data, &raw); err != nil {
		logger.Debug().Err(err).Int("line", line.number).Msg("skipping undecodable line")
		return false
	}
	event, err := normalizer.Normalize(service, &raw)
	if err != nil {
		logger.Debug().Err(err).Int("line", line.number).Msg("skipping malformed event")
		return false
	}
	if svcErr := coordinator.Ingest(ctx, event); svcErr != nil {
		logger.Debug().Str(loggers.FieldErrorCode, svcErr.Code).Int("line", line.number).Msg(svcErr.Message)
		return false
	}
	return true
}
