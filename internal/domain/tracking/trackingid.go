// Package tracking owns the shipment lifecycle: tracking ID generation, status
// transitions, the simulated courier walk and the customer-facing timeline.
//
// Functions here never touch storage. They return the updated shipment together
// with the effects the caller must commit.
package tracking

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	prefixLen      = 3
	suffixLen      = 4
	prefixFallback = 'X'
	base36         = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IntN returns a uniform random int in [0, n).
type IntN func(n int) int

// DefaultIntN is safe for concurrent use.
var DefaultIntN IntN = rand.IntN

// GenerateTrackingID builds {courier prefix}{base36 millis}{4 random base36 chars}, all uppercase.
// The prefix is the first three letters or digits of the courier name, padded with X.
func GenerateTrackingID(courierName string, now time.Time, intN IntN) string {
	if intN == nil {
		intN = DefaultIntN
	}

	var b strings.Builder
	n := 0
	for _, r := range courierName {
		if n == prefixLen {
			break
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	for ; n < prefixLen; n++ {
		b.WriteByte(prefixFallback)
	}

	b.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))

	for range suffixLen {
		b.WriteByte(base36[intN(len(base36))])
	}

	return b.String()
}
