package util

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const excerptLength = 64

// Excerpt returns a one-line preview of the given text
func Excerpt(text string, length ...int) string {
	size := excerptLength
	if len(length) > 0 {
		size = length[0]
	}

	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= size {
		return flat
	}
	return string(runes[:size]) + "..."
}

// HumanizeBytes renders a byte count using binary units
func HumanizeBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}

	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// SleepContext pauses for the given duration, returning
// early with the context error once the context is done
func SleepContext(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
