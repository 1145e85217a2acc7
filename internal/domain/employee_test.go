package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEmployeeID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want int64
	}{
		{"empty", nil, 1},
		{"contiguous", []int64{1, 2, 3}, 4},
		{"fills gap", []int64{1, 2, 4, 5}, 3},
		{"fills leading gap", []int64{2, 3}, 1},
		{"unordered", []int64{3, 1, 7}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employees := make([]Employee, 0, len(tt.ids))
			for _, id := range tt.ids {
				employees = append(employees, Employee{ID: id})
			}
			got := NextEmployeeID(employees)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, got)
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Engineer ")
	assert.True(t, ok)
	assert.Equal(t, RoleEngineer, r)

	_, ok = ParseRole("all")
	assert.False(t, ok)
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 9, 22, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-22", Today(now))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID(bad)
		var validation *ValidationError
		assert.True(t, errors.As(err, &validation), "expected validation error for %q", bad)
	}
}

func TestTrainingFilter_Match(t *testing.T) {
	active := Training{ID: 101, Title: "TypeScript 101", Active: true}
	passive := Training{ID: 103, Title: "React Advanced", Active: false}

	tests := []struct {
		name   string
		filter TrainingFilter
		want   []bool
	}{
		{"no filter", TrainingFilter{}, []bool{true, true}},
		{"title case-insensitive substring", TrainingFilter{Title: "script"}, []bool{true, false}},
		{"active only", TrainingFilter{Status: TrainingStatusActive}, []bool{true, false}},
		{"passive only", TrainingFilter{Status: TrainingStatusPassive}, []bool{false, true}},
		{"combined", TrainingFilter{Title: "react", Status: TrainingStatusActive}, []bool{false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want[0], tt.filter.Match(active))
			assert.Equal(t, tt.want[1], tt.filter.Match(passive))
		})
	}
}

func TestParseTrainingStatusFilter(t *testing.T) {
	assert.Equal(t, TrainingStatusActive, ParseTrainingStatusFilter("ACTIVE"))
	assert.Equal(t, TrainingStatusPassive, ParseTrainingStatusFilter("passive"))
	assert.Equal(t, TrainingStatusAll, ParseTrainingStatusFilter("whatever"))
}
