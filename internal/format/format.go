// Package format renders byte sizes and durations for user-facing messages.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats a byte count in a human readable form, e.g. "48.83 MB".
func Bytes(size int64) string {
	if size <= 0 {
		return "0B"
	}
	exp := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if exp >= len(sizeUnits) {
		exp = len(sizeUnits) - 1
	}
	value := float64(size) / math.Pow(1024, float64(exp))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[exp]
}

// Seconds formats a duration as fractional seconds, e.g. "12.3s".
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Uptime formats a duration with second granularity, e.g. "26h3m12s".
func Uptime(d time.Duration) string {
	return d.Truncate(time.Second).String()
}
