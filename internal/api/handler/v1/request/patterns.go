package request

import "regexp"

var (
	// seriesPattern is the storage form of a series label: decimal digits,
	// leading zeros allowed.
	seriesPattern = regexp.MustCompile(`^[0-9]+$`)
	// schedulePattern matches draw schedule labels such as "14:00".
	schedulePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)
