package time

import (
	"strconv"
	"time"
)

const (
	// dateTimeFormat is the ISO 8601 form used for timestamps inside XML
	// documents, e.g. the LastModified of a listing entry.
	dateTimeFormat = "2006-01-02T15:04:05.000Z"

	// httpDateFormat is the IMF-fixdate form of RFC 7231 section 7.1.1.1,
	// used by the Date header.
	httpDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// FormatDateTime formats value as an ISO 8601 date-time in UTC.
func FormatDateTime(value time.Time) string {
	return value.UTC().Format(dateTimeFormat)
}

// ParseDateTime parses an ISO 8601 date-time. Any number of fractional second
// digits is accepted.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// FormatHTTPDate formats value as an http-date in UTC.
func FormatHTTPDate(value time.Time) string {
	return value.UTC().Format(httpDateFormat)
}

// ParseHTTPDate parses an http-date.
func ParseHTTPDate(value string) (time.Time, error) {
	return time.Parse(httpDateFormat, value)
}

// FormatEpochSeconds returns value as whole Unix seconds.
func FormatEpochSeconds(value time.Time) string {
	return strconv.FormatInt(value.Unix(), 10)
}
