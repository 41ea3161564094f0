package aggregators

import (
	"fmt"
	"testing"

	"visit-analytics/internal/models"

	"github.com/stretchr/testify/assert"
)

func newCounter(counts map[string]int) *TopKCounter {
	c := NewTopKCounter()
	for key, n := range counts {
		for i := 0; i < n; i++ {
			c.Add(key)
		}
	}
	return c
}

func TestTopKCounter_TopN(t *testing.T) {
	t.Parallel()

	c := newCounter(map[string]int{"a": 5, "b": 3, "c": 3})

	tests := []struct {
		name     string
		n        int
		expected []models.GroupCount
	}{
		{
			name:     "ties broken by key",
			n:        2,
			expected: []models.GroupCount{{Group: "a", Count: 5}, {Group: "b", Count: 3}},
		},
		{
			name:     "top one",
			n:        1,
			expected: []models.GroupCount{{Group: "a", Count: 5}},
		},
		{
			name: "n larger than distinct keys",
			n:    10,
			expected: []models.GroupCount{
				{Group: "a", Count: 5}, {Group: "b", Count: 3}, {Group: "c", Count: 3},
			},
		},
		{
			name:     "zero",
			n:        0,
			expected: []models.GroupCount{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, c.TopN(tt.n))
		})
	}
}

func TestTopKCounter_TopN_MatchesAllPrefix(t *testing.T) {
	t.Parallel()

	c := NewTopKCounter()
	for i := 0; i < 200; i++ {
		for j := 0; j <= i%17; j++ {
			c.Add(fmt.Sprintf("/page/%03d", i))
		}
	}

	all := c.All()
	for _, n := range []int{1, 5, 16, 50, 199} {
		assert.Equal(t, all[:n], c.TopN(n), "TopN(%d)", n)
	}
}

func TestTopKCounter_All(t *testing.T) {
	t.Parallel()

	c := newCounter(map[string]int{"/b": 2, "/a": 2, "/c": 7, "/d": 1})

	assert.Equal(t, []models.GroupCount{
		{Group: "/c", Count: 7},
		{Group: "/a", Count: 2},
		{Group: "/b", Count: 2},
		{Group: "/d", Count: 1},
	}, c.All())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, int64(12), c.Total())
	assert.Equal(t, int64(7), c.Count("/c"))
	assert.Equal(t, int64(0), c.Count("/missing"))
}

func TestTopKCounter_Empty(t *testing.T) {
	t.Parallel()

	c := NewTopKCounter()
	assert.Empty(t, c.All())
	assert.NotNil(t, c.All())
	assert.Empty(t, c.TopN(3))
	assert.Equal(t, int64(0), c.Total())
}
