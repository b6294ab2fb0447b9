package format

import (
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0B"},
		{"negative", -5, "0B"},
		{"bytes", 512, "512 B"},
		{"exact kilobyte", 1024, "1 KB"},
		{"megabytes", 2 * 1024 * 1024, "2 MB"},
		{"fractional megabytes", 48*1024*1024 + 850*1024, "48.83 MB"},
		{"gigabytes", 2 * 1024 * 1024 * 1024, "2 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bytes(tt.size); got != tt.want {
				t.Errorf("Bytes(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(12340 * time.Millisecond); got != "12.3s" {
		t.Errorf("Seconds() = %q, want %q", got, "12.3s")
	}
}

func TestUptime(t *testing.T) {
	d := 26*time.Hour + 3*time.Minute + 12*time.Second + 450*time.Millisecond
	if got := Uptime(d); got != "26h3m12s" {
		t.Errorf("Uptime() = %q, want %q", got, "26h3m12s")
	}
}
