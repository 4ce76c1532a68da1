package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("two nights two rooms", func(t *testing.T) {
		checkIn := now.Add(5 * 24 * time.Hour)
		checkOut := now.Add(7 * 24 * time.Hour)

		quote, err := ComputeQuote(checkIn, checkOut, 1000, 2, now)
		require.NoError(t, err)

		assert.Equal(t, 2, quote.NumberOfNights)
		assert.InDelta(t, 4000, quote.TotalAmount, 0.001)
		assert.InDelta(t, 720, quote.TaxAmount, 0.001)
		assert.InDelta(t, 4720, quote.FinalAmount, 0.001)
	})

	t.Run("partial day rounds up to a full night", func(t *testing.T) {
		checkIn := now.Add(48 * time.Hour)
		checkOut := checkIn.Add(30 * time.Hour)

		quote, err := ComputeQuote(checkIn, checkOut, 500, 1, now)
		require.NoError(t, err)
		assert.Equal(t, 2, quote.NumberOfNights)
		assert.InDelta(t, 1000, quote.TotalAmount, 0.001)
	})

	t.Run("check-in in the past", func(t *testing.T) {
		_, err := ComputeQuote(now.Add(-time.Hour), now.Add(24*time.Hour), 1000, 1, now)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("check-in exactly now", func(t *testing.T) {
		_, err := ComputeQuote(now, now.Add(24*time.Hour), 1000, 1, now)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		checkIn := now.Add(48 * time.Hour)
		_, err := ComputeQuote(checkIn, checkIn, 1000, 1, now)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := ComputeQuote(now.Add(24*time.Hour), now.Add(48*time.Hour), -1, 1, now)
		require.ErrorIs(t, err, ErrValidation)
	})
}
