package booking

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	t.Run("whole nights", func(t *testing.T) {
		assert.Equal(t, 3, Nights(date(2026, 3, 10), date(2026, 3, 13)))
	})

	t.Run("single night", func(t *testing.T) {
		assert.Equal(t, 1, Nights(date(2026, 3, 10), date(2026, 3, 11)))
	})

	t.Run("partial nights round up", func(t *testing.T) {
		checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC)
		assert.Equal(t, 2, Nights(checkIn, checkOut))
	})

	t.Run("never below one", func(t *testing.T) {
		assert.Equal(t, 1, Nights(date(2026, 3, 10), date(2026, 3, 10)))
	})
}

func TestCalculateQuote(t *testing.T) {
	t.Run("no discount", func(t *testing.T) {
		q, err := CalculateQuote(150, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(450), q.TotalPrice)
		assert.False(t, q.OfferApplied)
		assert.Equal(t, 0, q.AppliedDiscount)
	})

	t.Run("discount rounds at nightly step", func(t *testing.T) {
		// 10% off 100 -> 90 per night.
		q, err := CalculateQuote(100, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(270), q.TotalPrice)
		assert.True(t, q.OfferApplied)
		assert.Equal(t, 10, q.AppliedDiscount)
	})

	t.Run("rounding happens before multiplying by nights", func(t *testing.T) {
		// 15% off 99 = 84.15 -> 84 per night; total is a multiple of 84.
		q, err := CalculateQuote(99, 2, 15)
		require.NoError(t, err)
		assert.Equal(t, int64(168), q.TotalPrice)
	})

	t.Run("twenty percent off 150", func(t *testing.T) {
		q, err := CalculateQuote(150, 3, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(360), q.TotalPrice)
	})

	t.Run("full discount", func(t *testing.T) {
		q, err := CalculateQuote(150, 3, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.TotalPrice)
		assert.True(t, q.OfferApplied)
	})

	t.Run("discount out of range", func(t *testing.T) {
		_, err := CalculateQuote(150, 3, -1)
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = CalculateQuote(150, 3, 101)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})
}

func TestNewBookingReference(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-[0-9A-Z]{9}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref, err := NewBookingReference()
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "reference %q generated twice", ref)
		seen[ref] = true
	}
}
