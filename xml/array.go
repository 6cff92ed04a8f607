package xml

import (
	"bytes"
)

// Array represents the encoding of a XML array type
type Array struct {
	w       *bytes.Buffer
	scratch *[]byte

	memberStartElement StartElement
	arrayEndElement    EndElement
}

func newArray(w *bytes.Buffer, scratch *[]byte, memberStartElement StartElement, arrayEndElement EndElement) *Array {
	return &Array{
		w:                  w,
		scratch:            scratch,
		memberStartElement: memberStartElement,
		arrayEndElement:    arrayEndElement,
	}
}

// Member adds a new member to the XML array.
// It returns a Value encoder.
func (a *Array) Member() Value {
	return newWrappedValue(a.w, a.scratch, a.memberStartElement.Copy())
}

// Close closes the array.
func (a *Array) Close() {
	writeEndElement(a.w, a.arrayEndElement)
	a.arrayEndElement = EndElement{}
}
