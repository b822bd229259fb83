// Package dateutils converts the date notations found in ledger exports to ISO dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted in ledger exports.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutDutch    = "02-01-2006"
	DateLayoutEuropean = "02.01.2006"
)

// LedgerFormats lists the layouts tried, in order.
var LedgerFormats = []string{
	DateLayoutISO,
	DateLayoutDutch,
	DateLayoutEuropean,
}

// ExcelSerialThreshold is the smallest number treated as an Excel date serial.
const ExcelSerialThreshold = 20000

// excelUnixOffset is the serial of 1970-01-01 in the Excel 1900 date system.
const excelUnixOffset = 25569

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseLedgerDate converts a ledger date to YYYY-MM-DD. It accepts the
// LedgerFormats layouts and Excel serial numbers above ExcelSerialThreshold.
// An empty input yields an empty date.
func ParseLedgerDate(dateStr string) (string, error) {
	s := CleanDateString(dateStr)
	if s == "" {
		return "", nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial > ExcelSerialThreshold {
			return ToISODate(FromExcelSerial(serial)), nil
		}
		return "", fmt.Errorf("unable to parse date: %s", dateStr)
	}
	for _, layout := range LedgerFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return ToISODate(t), nil
		}
	}
	return "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// FromExcelSerial converts an Excel 1900-system serial to a UTC time,
// rounded to the nearest millisecond.
func FromExcelSerial(serial float64) time.Time {
	ms := int64((serial-excelUnixOffset)*86400*1000 + 0.5)
	return time.UnixMilli(ms).UTC()
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// YearEnd returns the last day of the given year as an ISO date.
func YearEnd(year string) string {
	return year + "-12-31"
}
