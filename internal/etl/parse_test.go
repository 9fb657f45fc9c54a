package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"plain integer", "123", 123},
		{"whitespace", "  456 ", 456},
		{"float truncated", "12.9", 12},
		{"scientific float", "1e2", 100},
		{"negative clamped", "-5", 0},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"mixed garbage", "12abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.input))
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"minutes seconds", "01:30", 90},
		{"hours minutes seconds", "1:02:03", 3723},
		{"zero", "00:00", 0},
		{"no separator", "90", 0},
		{"four parts", "1:2:3:4", 0},
		{"garbage part", "ab:cd", 0},
		{"negative part", "-1:30", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got := ParseTimestamp("2024-03-01 12:30:45")
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC), got.UTC())
	}

	got = ParseTimestamp("2024/03/01 12:30")
	if assert.NotNil(t, got) {
		assert.Equal(t, 12, got.Hour())
	}

	got = ParseTimestamp("2024-03-01")
	assert.NotNil(t, got)

	assert.Nil(t, ParseTimestamp("yesterday"))
	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("03-01-2024"))
}
