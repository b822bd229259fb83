// Package validation checks user supplied command arguments before any
// ledger work starts.
package validation

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("an input ledger file is required (--input)")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", path)
	}
	return nil
}

// IsValidInputDir checks that path names an existing directory.
func IsValidInputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input %s is not a directory", path)
	}
	return nil
}

// IsValidYear accepts an empty year (all periods) or four digits.
func IsValidYear(year string) error {
	if year == "" || yearPattern.MatchString(year) {
		return nil
	}
	return fmt.Errorf("invalid year %q, expected four digits such as 2024", year)
}

// IsValidOutputFormat checks format against the supported ones. An empty
// format is accepted and means the default.
func IsValidOutputFormat(format string, supported ...string) error {
	if format == "" || slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s", format, strings.Join(supported, ", "))
}

// IsValidFilePermissions rejects modes that grant any access to others.
// Session files hold financial adjustments and should stay private.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.String())
	}
	return nil
}
