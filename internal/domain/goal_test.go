package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingGoal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		goal    ReadingGoal
		wantErr bool
	}{
		{name: "ascending tiers", goal: ReadingGoal{LowGoal: 100, MediumGoal: 200, HighGoal: 300}},
		{name: "zero low", goal: ReadingGoal{LowGoal: 0, MediumGoal: 200, HighGoal: 300}, wantErr: true},
		{name: "medium equals low", goal: ReadingGoal{LowGoal: 100, MediumGoal: 100, HighGoal: 300}, wantErr: true},
		{name: "high below medium", goal: ReadingGoal{LowGoal: 100, MediumGoal: 200, HighGoal: 150}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goal.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestReadingGoal_TierProgress(t *testing.T) {
	g := ReadingGoal{LowGoal: 100, MediumGoal: 200, HighGoal: 300}

	low, medium, high := g.TierProgress(150)
	assert.InDelta(t, 150.0, low, 1e-9)
	assert.InDelta(t, 75.0, medium, 1e-9)
	assert.InDelta(t, 50.0, high, 1e-9)
}

func TestReadingGoal_TierProgress_ZeroThreshold(t *testing.T) {
	g := ReadingGoal{}

	low, medium, high := g.TierProgress(50)
	assert.Zero(t, low)
	assert.Zero(t, medium)
	assert.Zero(t, high)
}
