package service

import (
	"testing"

	"gridiron_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculateIQLevel_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  model.IQLevel
	}{
		{0, model.IQLevelRookie},
		{39, model.IQLevelRookie},
		{40, model.IQLevelStarter},
		{59, model.IQLevelStarter},
		{60, model.IQLevelVarsity},
		{74, model.IQLevelVarsity},
		{75, model.IQLevelAllState},
		{89, model.IQLevelAllState},
		{90, model.IQLevelAllAmerican},
		{100, model.IQLevelAllAmerican},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateIQLevel(tt.score), "score %d", tt.score)
	}
}

func TestCalculateIQLevel_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, model.IQLevelRookie, CalculateIQLevel(-15))
	assert.Equal(t, model.IQLevelAllAmerican, CalculateIQLevel(101))
	assert.Equal(t, model.IQLevelAllAmerican, CalculateIQLevel(1<<20))
}

func TestCalculateIQLevel_Monotonic(t *testing.T) {
	for s1 := 0; s1 <= 100; s1++ {
		for s2 := s1; s2 <= 100; s2++ {
			r1 := TierRank(CalculateIQLevel(s1))
			r2 := TierRank(CalculateIQLevel(s2))
			if r1 > r2 {
				t.Fatalf("tier(%d)=%d > tier(%d)=%d", s1, r1, s2, r2)
			}
		}
	}
}

func TestTierRank(t *testing.T) {
	levels := IQLevels()
	for i, l := range levels {
		assert.Equal(t, i, TierRank(l))
	}
	assert.Equal(t, -1, TierRank("hall_of_fame"))
}
