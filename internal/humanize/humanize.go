// Package humanize is like dustin/go-humanize.
package humanize

import "fmt"

// Bytes is like dustin/go-humanize.IBytes but its implementation is
// specially tailored for printing the size of uploaded datasets.
func Bytes(size int64) string {
	value, prefix := reduce(float64(size))
	if prefix == "" {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.1f %sB", value, prefix)
}

// reduce reduces value to a base value and a binary unit prefix. For
// example, reduce(1536) returns (1.5, "Ki").
func reduce(value float64) (float64, string) {
	if value < 1024 {
		return value, ""
	}
	value /= 1024
	if value < 1024 {
		return value, "Ki"
	}
	value /= 1024
	if value < 1024 {
		return value, "Mi"
	}
	value /= 1024
	return value, "Gi"
}
