// Package timecodec converts between the colon separated time notations used on
// the command line and time.Duration.
//
// Race durations are written as hours:minutes (2:30), lap times as
// minutes:seconds (1:42).
package timecodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInputFormat = errors.New("invalid time format")

// ParseRaceDuration parses H:MM
func ParseRaceDuration(s string) (time.Duration, error) {
	h, m, err := parseTwoFields(s)
	if err != nil {
		return 0, fmt.Errorf("%w: race duration %q, use HH:MM", ErrInputFormat, s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// ParseLapTime parses M:SS
func ParseLapTime(s string) (time.Duration, error) {
	m, sec, err := parseTwoFields(s)
	if err != nil {
		return 0, fmt.Errorf("%w: lap time %q, use MM:SS", ErrInputFormat, s)
	}
	return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

func parseTwoFields(s string) (first, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInputFormat
	}
	if first, err = strconv.Atoi(parts[0]); err != nil || first < 0 {
		return 0, 0, ErrInputFormat
	}
	if second, err = strconv.Atoi(parts[1]); err != nil || second < 0 {
		return 0, 0, ErrInputFormat
	}
	return first, second, nil
}

// FormatMinSec formats d as M:SS, minutes are not wrapped into hours.
func FormatMinSec(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatHourMin formats d as H:MM
func FormatHourMin(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/3600, (secs%3600)/60)
}
