package common

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName makes name safe to use as a file name. Characters other
// than letters, digits, '_', '-' and '.' become '_', and ".." sequences are
// removed.
func SanitizeFileName(name string) string {
	sanitized := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")

	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	sanitized = result.String()

	for strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "_")
	}
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}

	sanitized = strings.Trim(sanitized, "_.")
	if sanitized == "" {
		sanitized = "UNKNOWN"
	}
	return sanitized
}

// OutputFileName derives an output name from an input path:
// "exports/Grootboek 2024.csv" with suffix "report" and ext "json" gives
// "Grootboek_2024_report.json".
func OutputFileName(inputPath, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := SanitizeFileName(base)
	if suffix != "" {
		name += "_" + suffix
	}
	return name + "." + ext
}
