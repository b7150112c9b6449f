package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// TotalHours is the length of the circular day.
	TotalHours = 24.0

	// VisibleHours is the fixed width of the viewport window.
	VisibleHours = 12.0

	// MinWidth is the smallest block width in viewport percent.
	MinWidth = 2.0
)

// Normalize wraps x into [0, 24).
func Normalize(x float64) float64 {
	n := math.Mod(math.Mod(x, TotalHours)+TotalHours, TotalHours)
	// math.Mod can return 24 for tiny negative inputs due to rounding.
	if n >= TotalHours {
		return 0
	}
	return n
}

// PercentToTime converts a viewport percentage to a clock time.
func PercentToTime(pct, viewStart float64) float64 {
	return Normalize(viewStart + (pct/100)*VisibleHours)
}

// TimeToPercent converts a clock time to a viewport percentage.
// The result is not clamped: times before viewStart wrap to values up to 200.
func TimeToPercent(t, viewStart float64) float64 {
	return (Normalize(t-viewStart) / VisibleHours) * 100
}

// FormatTime renders a time as HH:MM. Minutes are rounded on the total
// minute count so that 19.999 becomes "20:00" rather than "19:60".
func FormatTime(t float64) string {
	total := int(math.Round(Normalize(t)*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatHour renders a whole clock hour as HH:00.
func FormatHour(t float64) string {
	return fmt.Sprintf("%02d:00", int(math.Floor(Normalize(t))))
}

// ParseTimeString parses "H" or "H:MM" into a normalized time value.
func ParseTimeString(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m := 0
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		m, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}
	return Normalize(float64(h) + float64(m)/60), nil
}

// ParseHours parses a positive decimal hour count such as "3", "1.5" or "2.5h".
func ParseHours(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "h")
	h, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return h, nil
}

// RoundTenth rounds x to one decimal place.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// WidthToHours converts a width in viewport percent to hours.
func WidthToHours(width float64) float64 {
	return (width / 100) * VisibleHours
}

// HoursToWidth converts hours to a width in viewport percent.
func HoursToWidth(hours float64) float64 {
	return (hours / VisibleHours) * 100
}

// Clamp bounds v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
