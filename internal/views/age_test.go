package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeAgeBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "0s ago"},
		{59 * time.Second, "59s ago"},
		{60 * time.Second, "1m ago"},
		{3599 * time.Second, "59m ago"},
		{3600 * time.Second, "1h ago"},
		{86399 * time.Second, "23h ago"},
		{86400 * time.Second, "1d ago"},
		{29 * day, "29d ago"},
		{30 * day, "1mo ago"},
		{359 * day, "11mo ago"},
		{360 * day, "1y ago"},
		{365 * day, "1y ago"},
		{800 * day, "2y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeAge(now.Add(-tt.offset), now))
		})
	}
}

func TestRelativeAgeEdgeCases(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", RelativeAge(time.Time{}, now))
	assert.Equal(t, "0s ago", RelativeAge(now.Add(time.Hour), now), "future timestamps clamp to zero")
	assert.Equal(t, "1s ago", RelativeAge(now.Add(-1500*time.Millisecond), now), "partial seconds truncate")
}
