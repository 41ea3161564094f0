package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		expected    Field
		countable   bool
		averageable bool
		groupable   bool
	}{
		{input: "ip", expected: FieldIP, countable: true},
		{input: "generation_time", expected: FieldGenerationTime, averageable: true},
		{input: " Path ", expected: FieldPath, groupable: true},
		{input: "browser", expected: FieldBrowser, groupable: true},
		{input: "PLATFORM", expected: FieldPlatform, groupable: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			f, err := ParseField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
			assert.Equal(t, tt.countable, f.Countable())
			assert.Equal(t, tt.averageable, f.Averageable())
			assert.Equal(t, tt.groupable, f.Groupable())
		})
	}
}

func TestParseField_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ParseField("referer")
	assert.Error(t, err)

	_, err = ParseField("")
	assert.Error(t, err)
}

func TestField_Dimension(t *testing.T) {
	t.Parallel()

	d, ok := FieldBrowser.Dimension()
	require.True(t, ok)
	assert.Equal(t, DimensionBrowser, d)
	assert.Equal(t, "browser", d.String())

	_, ok = FieldIP.Dimension()
	assert.False(t, ok)
}

func TestEvent_Group(t *testing.T) {
	t.Parallel()

	e := &Event{Path: "/a", Browser: "Firefox", Platform: "Linux"}
	assert.Equal(t, "/a", e.Group(DimensionPath))
	assert.Equal(t, "Firefox", e.Group(DimensionBrowser))
	assert.Equal(t, "Linux", e.Group(DimensionPlatform))
}
