package booking

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

// hoursPerNight: nights are computed from the raw instant difference, not
// calendar days, so partial nights round up.
const hoursPerNight = 24

// Quote is the server-side price for a stay. Clients never supply prices;
// the quote is derived from the room's current nightly rate.
type Quote struct {
	NightlyRate     int64
	Nights          int
	TotalPrice      int64
	OfferApplied    bool
	AppliedDiscount int
}

// Nights returns the number of billable nights between check-in and
// check-out, rounding partial nights up and never below one.
func Nights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	n := int(math.Ceil(hours / hoursPerNight))
	if n < 1 {
		return 1
	}
	return n
}

// CalculateQuote prices a stay of nights at the given nightly rate with an
// optional percentage discount. The discount rounds at the nightly-rate step
// (half away from zero), then multiplies by nights, so the total is always an
// exact multiple of the effective per-night price.
func CalculateQuote(nightlyRate int64, nights, discountPercent int) (Quote, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return Quote{}, ErrInvalidDiscount
	}
	q := Quote{
		NightlyRate:     nightlyRate,
		Nights:          nights,
		AppliedDiscount: discountPercent,
	}
	effective := nightlyRate
	if discountPercent > 0 {
		effective = int64(math.Round(float64(nightlyRate) * float64(100-discountPercent) / 100))
		q.OfferApplied = true
	}
	q.TotalPrice = effective * int64(nights)
	return q, nil
}

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingReference returns a human-friendly confirmation code of the form
// BK-XXXXXXXXX. References are random, not sequential, so they leak nothing
// about booking volume.
func NewBookingReference() (string, error) {
	buf := make([]byte, 9)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return "BK-" + string(buf), nil
}
