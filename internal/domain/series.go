package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedSeries means a series label could not be parsed as a
// non-negative decimal integer. Series fields are system-written, so this
// only happens on corrupt data; the operation fails and is not retried.
var ErrMalformedSeries = errors.New("malformed series value")

// seriesMinWidth is the minimum width a series label is padded to. It is a
// minimum, not a cap: "9999" advances to "10000".
const seriesMinWidth = 4

// ParseSeries parses a series label, tolerating leading zeros.
func ParseSeries(s string) (uint64, error) {
	if s == "" {
		return 0, ErrMalformedSeries
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrMalformedSeries
	}

	return n, nil
}

// FormatSeries renders n as a decimal string left-padded with zeros to the
// minimum series width.
func FormatSeries(n uint64) string {
	return fmt.Sprintf("%0*d", seriesMinWidth, n)
}

// NextSeries returns the label following current: parse, add one, re-pad.
func NextSeries(current string) (string, error) {
	n, err := ParseSeries(current)
	if err != nil {
		return "", fmt.Errorf("domain.ParseSeries -> %w", err)
	}

	return FormatSeries(n + 1), nil
}

// ValidateSeries reports whether s is a well-formed series label.
func ValidateSeries(s string) error {
	_, err := ParseSeries(s)

	return err
}
