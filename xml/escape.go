package xml

import (
	"bytes"
	"encoding/xml"
)

// escapeString writes the XML escaped form of s. Control characters that
// XML 1.0 forbids are replaced with the unicode replacement character.
func escapeString(w *bytes.Buffer, s string) {
	// EscapeText only fails if the writer fails, a bytes.Buffer never does.
	_ = xml.EscapeText(w, []byte(s))
}
