package bonus_test

import (
	"testing"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
	bonuserrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"

	"github.com/stretchr/testify/assert"
)

func midday(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	assert.NoError(t, err)
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	assert.NoError(t, err)
	return clock.AtMidday(day, loc)
}

func intPtr(v int) *int { return &v }

func TestResolveEndDate_Permanent(t *testing.T) {
	start := midday(t, "2025-01-10")

	for _, duration := range []*int{nil, intPtr(0), intPtr(6), intPtr(-3)} {
		end, err := bonus.ResolveEndDate(bonus.TemporalityPermanent, start, duration)
		assert.NoError(t, err)
		assert.Nil(t, end)
	}
}

func TestResolveEndDate_OneOff(t *testing.T) {
	start := midday(t, "2025-01-10")

	t.Run("with duration", func(t *testing.T) {
		end, err := bonus.ResolveEndDate(bonus.TemporalityOneOff, start, intPtr(2))
		assert.NoError(t, err)
		assert.NotNil(t, end)
		assert.Equal(t, "2025-03-10", end.Format("2006-01-02"))
	})

	t.Run("defaults to one month of grace", func(t *testing.T) {
		for _, duration := range []*int{nil, intPtr(0), intPtr(-1)} {
			end, err := bonus.ResolveEndDate(bonus.TemporalityOneOff, start, duration)
			assert.NoError(t, err)
			assert.NotNil(t, end)
			assert.Equal(t, "2025-02-10", end.Format("2006-01-02"))
		}
	})
}

func TestResolveEndDate_Recurrent(t *testing.T) {
	start := midday(t, "2025-01-10")

	t.Run("with duration", func(t *testing.T) {
		end, err := bonus.ResolveEndDate(bonus.TemporalityRecurrent, start, intPtr(6))
		assert.NoError(t, err)
		assert.NotNil(t, end)
		assert.Equal(t, "2025-07-10", end.Format("2006-01-02"))
	})

	t.Run("open ended without duration", func(t *testing.T) {
		for _, duration := range []*int{nil, intPtr(0), intPtr(-2)} {
			end, err := bonus.ResolveEndDate(bonus.TemporalityRecurrent, start, duration)
			assert.NoError(t, err)
			assert.Nil(t, end)
		}
	})
}

func TestResolveEndDate_UnknownTemporality(t *testing.T) {
	start := midday(t, "2025-01-10")

	end, err := bonus.ResolveEndDate("quincenal", start, intPtr(1))
	assert.Nil(t, end)
	assert.ErrorIs(t, err, bonuserrors.ErrUnknownTemporality)
}

func TestResolveEndDate_KeepsMidday(t *testing.T) {
	start := midday(t, "2025-01-31")

	end, err := bonus.ResolveEndDate(bonus.TemporalityOneOff, start, intPtr(1))
	assert.NoError(t, err)
	assert.NotNil(t, end)
	assert.Equal(t, 12, end.Hour())
}
