package models

import (
	"fmt"
	"strings"
)

// Field is a queryable event attribute.
type Field string

const (
	FieldIP             Field = "ip"
	FieldGenerationTime Field = "generation_time"
	FieldPath           Field = "path"
	FieldBrowser        Field = "browser"
	FieldPlatform       Field = "platform"
)

// Dimension indexes the per-day frequency counters.
type Dimension int

const (
	DimensionPath Dimension = iota
	DimensionBrowser
	DimensionPlatform

	DimensionCount = 3
)

var dimensionNames = [DimensionCount]string{"path", "browser", "platform"}

func (d Dimension) String() string {
	if d < 0 || int(d) >= DimensionCount {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

var fieldDimensions = map[Field]Dimension{
	FieldPath:     DimensionPath,
	FieldBrowser:  DimensionBrowser,
	FieldPlatform: DimensionPlatform,
}

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldIP, FieldGenerationTime, FieldPath, FieldBrowser, FieldPlatform:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q", s)
	}
}

// Countable reports whether distinct values of the field can be counted.
func (f Field) Countable() bool {
	return f == FieldIP
}

// Averageable reports whether the field holds a numeric measurement.
func (f Field) Averageable() bool {
	return f == FieldGenerationTime
}

// Dimension returns the frequency counter the field groups by.
func (f Field) Dimension() (Dimension, bool) {
	d, ok := fieldDimensions[f]
	return d, ok
}

func (f Field) Groupable() bool {
	_, ok := fieldDimensions[f]
	return ok
}
