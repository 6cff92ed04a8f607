package http

import (
	"fmt"
	"time"
)

// ParseTime parses a time string like the HTTP Date header. This uses a more
// relaxed rule set for date parsing compared to the standard library.
func ParseTime(text string) (t time.Time, err error) {
	for _, layout := range []string{
		"Mon, _2 Jan 2006 15:04:05 GMT",
		"Monday, 02-Jan-06 15:04:05 MST",
		"Mon Jan _2 15:04:05 2006",
	} {
		t, err = time.Parse(layout, text)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse HTTP date %q, %w", text, err)
}
