package fat12

import (
	"time"
)

// ParseDate decodes a 16-bit DOS date stamp: bits 0-4 day of month (1-31),
// bits 5-8 month (1-12), bits 9-15 years since 1980. The result always has a
// time of 00:00:00 UTC.
//
// Day or month 0 is invalid per the format, so time.Time{} is returned for
// those and callers can use time.Time.IsZero.
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := input & 0x1E0 >> 5
	year := input & 0xFE00 >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a 16-bit DOS time stamp: bits 0-4 seconds in 2-second
// granularity (0-29), bits 5-10 minutes, bits 11-15 hours. The result always
// has the date January 1, year 1, so midnight satisfies time.Time.IsZero.
//
// Out-of-range field values would roll over into the next day; they are
// clamped to 23:59:59 instead.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := input & 0x7E0 >> 5
	hours := input & 0xF800 >> 11

	result := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)

	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}

	return result
}
