package tracking

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedIntN(v int) IntN {
	return func(n int) int { return v % n }
}

func TestGenerateTrackingID(t *testing.T) {
	now := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	tests := []struct {
		name    string
		courier string
		want    string
	}{
		{name: "bluedart", courier: "BlueDart", want: "BLU" + stamp + "AAAA"},
		{name: "lowercase", courier: "dtdc", want: "DTD" + stamp + "AAAA"},
		{name: "skips punctuation", courier: "e-Kart Logistics", want: "EKA" + stamp + "AAAA"},
		{name: "short name is padded", courier: "DX", want: "DXX" + stamp + "AAAA"},
		{name: "empty name", courier: "", want: "XXX" + stamp + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTrackingID(tt.courier, now, fixedIntN(10)))
		})
	}
}

func TestGenerateTrackingID_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^BLU[0-9A-Z]+$`)

	for range 200 {
		id := GenerateTrackingID("BlueDart", time.Now(), nil)
		assert.Regexp(t, pattern, id)
	}
}

func TestGenerateTrackingID_RandomSuffix(t *testing.T) {
	now := time.Now()

	seen := make(map[string]struct{})
	for range 50 {
		seen[GenerateTrackingID("BlueDart", now, nil)] = struct{}{}
	}

	assert.Greater(t, len(seen), 1)
}
