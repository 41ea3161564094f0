package aggregators

import (
	"fmt"

	"github.com/axiomhq/hyperloglog"
)

const (
	CardinalityModeExact = "exact"
	CardinalityModeHLL   = "hll"
)

// Cardinality counts distinct visitor identifiers of one day.
// Implementations are not safe for concurrent use; DayAggregate serializes access.
type Cardinality interface {
	// Add records id. Adding the same id again has no effect on Count.
	Add(id string)
	// Count never decreases between calls.
	Count() int64
	// Exact reports whether Count is exact or an estimate.
	Exact() bool
}

// CardinalityFactory builds the estimator of a new day bucket.
type CardinalityFactory func() Cardinality

// NewCardinalityFactory returns the factory for a configured mode: "exact" keeps every id,
// "hll" keeps a HyperLogLog sketch with precision 14 or 16.
func NewCardinalityFactory(mode string, precision int) (CardinalityFactory, error) {
	switch mode {
	case "", CardinalityModeExact:
		return NewExactCardinality, nil
	case CardinalityModeHLL:
		switch precision {
		case 14:
			return func() Cardinality { return newSketchCardinality(hyperloglog.New14()) }, nil
		case 16:
			return func() Cardinality { return newSketchCardinality(hyperloglog.New16()) }, nil
		default:
			return nil, fmt.Errorf("unsupported hyperloglog precision: %d", precision)
		}
	default:
		return nil, fmt.Errorf("unsupported cardinality mode: %q", mode)
	}
}

type exactCardinality struct {
	ids map[string]struct{}
}

func NewExactCardinality() Cardinality {
	return &exactCardinality{ids: make(map[string]struct{})}
}

func (c *exactCardinality) Add(id string) {
	c.ids[id] = struct{}{}
}

func (c *exactCardinality) Count() int64 {
	return int64(len(c.ids))
}

func (c *exactCardinality) Exact() bool {
	return true
}

// sketchCardinality clamps the sketch estimate to the highest value already reported,
// since a HyperLogLog estimate can move down slightly after an insert.
type sketchCardinality struct {
	sketch *hyperloglog.Sketch
	max    int64
}

func newSketchCardinality(sketch *hyperloglog.Sketch) Cardinality {
	return &sketchCardinality{sketch: sketch}
}

func (c *sketchCardinality) Add(id string) {
	c.sketch.Insert([]byte(id))
}

func (c *sketchCardinality) Count() int64 {
	estimate := int64(c.sketch.Estimate())
	if estimate > c.max {
		c.max = estimate
	}
	return c.max
}

func (c *sketchCardinality) Exact() bool {
	return false
}

// frozenCardinality is the compacted form kept for a frozen day.
type frozenCardinality struct {
	count int64
	exact bool
}

func freezeCardinality(c Cardinality) Cardinality {
	if f, ok := c.(*frozenCardinality); ok {
		return f
	}
	return &frozenCardinality{count: c.Count(), exact: c.Exact()}
}

func (c *frozenCardinality) Add(string) {}

func (c *frozenCardinality) Count() int64 {
	return c.count
}

func (c *frozenCardinality) Exact() bool {
	return c.exact
}
