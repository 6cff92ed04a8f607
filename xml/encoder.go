package xml

import (
	"bytes"
)

// Encoder is an XML encoder that supports construction of XML values
// using methods. Values write their start tag when created and their end
// tag when closed; scalar writers close the value themselves.
type Encoder struct {
	w *bytes.Buffer
	Value
}

// NewEncoder returns an XML encoder
func NewEncoder() *Encoder {
	writer := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)

	return &Encoder{w: writer, Value: newValue(writer, &scratch, StartElement{})}
}

// RootElement writes the document's root start tag and returns the value
// for it. The returned value must be closed.
func (e *Encoder) RootElement(element StartElement) Value {
	return newWrappedValue(e.w, e.scratch, element)
}

// String returns the string output of the XML encoder
func (e Encoder) String() string {
	return e.w.String()
}

// Bytes returns the []byte slice of the XML encoder
func (e Encoder) Bytes() []byte {
	return e.w.Bytes()
}
