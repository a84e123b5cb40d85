// Package persistence implements the booking repositories for Postgres and SQLite.
package persistence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Available days are stored as a comma-separated weekday list, e.g. "1,2,3,4,5"
// for Monday through Friday (0 = Sunday).
func formatAvailableDays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func parseAvailableDays(value string) ([]time.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
