package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nada/admin/internal/models"
)

const PermanentDuration = "permanent"

// maxSuspensionDays is the longest day count a time.Duration can hold.
const maxSuspensionDays = int(math.MaxInt64 / int64(24*time.Hour))

// ParseSuspension turns "permanent", "<n>d" or a Go duration ("1m", "12h")
// into the suspension applied at now.
func ParseSuspension(raw string, now time.Time) (models.Suspension, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == PermanentDuration {
		return models.Suspension{Permanent: true}, nil
	}

	var d time.Duration
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return models.Suspension{}, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
		}
		if days > maxSuspensionDays {
			return models.Suspension{}, fmt.Errorf("%w: %q is too long", ErrInvalidDuration, raw)
		}
		d = time.Duration(days) * 24 * time.Hour
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return models.Suspension{}, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
		}
		d = parsed
	}
	if d <= 0 {
		return models.Suspension{}, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	return models.Suspension{Until: now.Add(d).UTC()}, nil
}
