package xml

import (
	"bytes"
	"strconv"
)

const (
	leftAngleBracket  = '<'
	rightAngleBracket = '>'
	forwardSlash      = '/'
	colon             = ':'
	equals            = '='
	quote             = '"'
)

// Value represents an XML Value type
type Value struct {
	w       *bytes.Buffer
	scratch *[]byte

	startElement StartElement
}

// newValue returns a new Value encoder. newValue does NOT write the start element tag
func newValue(w *bytes.Buffer, scratch *[]byte, startElement StartElement) Value {
	return Value{
		w:            w,
		scratch:      scratch,
		startElement: startElement,
	}
}

// newWrappedValue writes the start element xml tag and returns a Value
func newWrappedValue(w *bytes.Buffer, scratch *[]byte, startElement StartElement) Value {
	writeStartElement(w, startElement)
	return Value{w: w, scratch: scratch, startElement: startElement}
}

// writeStartElement takes in a start element and writes it.
// It handles namespace, attributes in start element.
func writeStartElement(w *bytes.Buffer, el StartElement) {
	if el.isZero() {
		return
	}

	w.WriteRune(leftAngleBracket)

	if len(el.Name.Space) != 0 {
		w.WriteString(el.Name.Space)
		w.WriteRune(colon)
	}
	w.WriteString(el.Name.Local)

	for _, attr := range el.Attr {
		w.WriteRune(' ')
		buildAttribute(w, attr)
	}

	w.WriteRune(rightAngleBracket)
}

func buildAttribute(w *bytes.Buffer, attr Attr) {
	if len(attr.Name.Space) != 0 {
		w.WriteString(attr.Name.Space)
		w.WriteRune(colon)
	}

	w.WriteString(attr.Name.Local)
	w.WriteRune(equals)
	w.WriteRune(quote)
	escapeString(w, attr.Value)
	w.WriteRune(quote)
}

func writeEndElement(w *bytes.Buffer, el EndElement) {
	if el.isZero() {
		return
	}

	w.WriteRune(leftAngleBracket)
	w.WriteRune(forwardSlash)

	if len(el.Name.Space) != 0 {
		w.WriteString(el.Name.Space)
		w.WriteRune(colon)
	}
	w.WriteString(el.Name.Local)
	w.WriteRune(rightAngleBracket)
}

// String encodes v as a XML string.
// It will auto close the parent xml element tag.
func (xv Value) String(v string) {
	escapeString(xv.w, v)
	xv.Close()
}

// Long encodes v as a XML number.
// It will auto close the parent xml element tag.
func (xv Value) Long(v int64) {
	*xv.scratch = strconv.AppendInt((*xv.scratch)[:0], v, 10)
	xv.w.Write(*xv.scratch)

	xv.Close()
}

// Boolean encodes v as a XML boolean.
// It will auto close the parent xml element tag.
func (xv Value) Boolean(v bool) {
	*xv.scratch = strconv.AppendBool((*xv.scratch)[:0], v)
	xv.w.Write(*xv.scratch)

	xv.Close()
}

// MemberElement returns a nested element encoding. The start tag is
// written immediately; the returned Value must be closed.
func (xv Value) MemberElement(element StartElement) Value {
	return newWrappedValue(xv.w, xv.scratch, element)
}

// ArrayWithCustomName returns an array encoder whose members are each
// wrapped in element. The array itself is wrapped by xv's element.
//
// for eg, `<Grants><Grant>entry1</Grant><Grant>entry2</Grant></Grants>`
func (xv Value) ArrayWithCustomName(element StartElement) *Array {
	return newArray(xv.w, xv.scratch, element, xv.startElement.End())
}

// Close closes the value
func (xv Value) Close() {
	writeEndElement(xv.w, xv.startElement.End())
}
