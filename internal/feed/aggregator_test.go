package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcac-club/clubsite/internal/domain"
)

func titles(items []domain.FeedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestMerge_DynamicSortedDescendingThenStatic(t *testing.T) {
	dynamic := []domain.FeedItem{
		{Title: "T1", Timestamp: "2025-05-01T10:00:00Z"},
		{Title: "T2", Timestamp: "2025-06-01T10:00:00Z"},
	}
	static := []domain.FeedItem{
		{Title: "A", Date: "2024-01-01"},
		{Title: "B", Date: "2026-01-01"},
	}

	merged := Merge(dynamic, static)

	// Static order is preserved as given, even when a static item is
	// newer than every dynamic one.
	assert.Equal(t, []string{"T2", "T1", "A", "B"}, titles(merged))
}

func TestMerge_EmptyDynamicDegradesToStatic(t *testing.T) {
	static := []domain.FeedItem{
		{Title: "A"},
		{Title: "B"},
	}

	assert.Equal(t, []string{"A", "B"}, titles(Merge(nil, static)))
	assert.Equal(t, []string{"A", "B"}, titles(Merge([]domain.FeedItem{}, static)))
}

func TestMerge_EmptyStatic(t *testing.T) {
	dynamic := []domain.FeedItem{{Title: "T1", Timestamp: "2025-05-01T10:00:00Z"}}

	assert.Equal(t, []string{"T1"}, titles(Merge(dynamic, nil)))
}

func TestMerge_BothEmptyIsEmptyNonNil(t *testing.T) {
	merged := Merge(nil, nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestMerge_UnparseableTimestampsSortLastAmongDynamic(t *testing.T) {
	dynamic := []domain.FeedItem{
		{Title: "Broken", Timestamp: "yesterday"},
		{Title: "Old", Timestamp: "2020-01-01T00:00:00Z"},
		{Title: "New", Timestamp: "2025-01-01T00:00:00Z"},
	}

	merged := Merge(dynamic, nil)

	assert.Equal(t, []string{"New", "Old", "Broken"}, titles(merged))
}

func TestMerge_StableForEqualTimestamps(t *testing.T) {
	dynamic := []domain.FeedItem{
		{Title: "First", Timestamp: "2025-01-01T00:00:00Z"},
		{Title: "Second", Timestamp: "2025-01-01T00:00:00Z"},
	}

	merged := Merge(dynamic, nil)

	assert.Equal(t, []string{"First", "Second"}, titles(merged))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	dynamic := []domain.FeedItem{
		{Title: "Old", Timestamp: "2020-01-01T00:00:00Z"},
		{Title: "New", Timestamp: "2025-01-01T00:00:00Z"},
	}

	Merge(dynamic, nil)

	assert.Equal(t, []string{"Old", "New"}, titles(dynamic))
}
