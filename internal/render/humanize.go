package render

import "fmt"

var units = [...]string{"B", "KB", "MB", "GB", "TB"}

// Humanize scales a byte value down the 1024 ladder and formats it with one
// decimal place, appending "/s" when it is a rate. Values below 1 KB
// (including zero and negatives) are formatted literally in bytes.
func Humanize(value float64, rate bool) string {
	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}
	suffix := ""
	if rate {
		suffix = "/s"
	}
	return fmt.Sprintf("%.1f %s%s", value, units[idx], suffix)
}
