package testing

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/google/go-cmp/cmp"

	"github.com/objkit/objkit-go/testing/xml"
)

// T provides the testing interface for capturing failures with testing assert
// utilities.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Helper()
}

// XMLEqual asserts two XML documents by sorting the XML and comparing the
// strings. Returns an error if the two documents are not equal.
func XMLEqual(expectBytes, actualBytes []byte) error {
	actualString, err := xml.SortXML(bytes.NewBuffer(actualBytes))
	if err != nil {
		return err
	}

	expectString, err := xml.SortXML(bytes.NewBuffer(expectBytes))
	if err != nil {
		return err
	}

	if diff := cmp.Diff(expectString, actualString); len(diff) != 0 {
		return fmt.Errorf("XML mismatch (-expect +actual):\n%s", diff)
	}

	return nil
}

// AssertXMLEqual compares two XML documents and identifies if the documents
// contain the same values. Emits a testing error, and returns false if the
// documents are not equal.
func AssertXMLEqual(t T, expect, actual []byte) bool {
	t.Helper()

	if err := XMLEqual(expect, actual); err != nil {
		t.Errorf("expect XML equal, %v", err)
		return false
	}

	return true
}

// URLQueryEqual compares two URL query strings and identifies if the queries
// contain the same values, independent of parameter order.
func URLQueryEqual(expect, actual string) error {
	expectValue, err := url.ParseQuery(expect)
	if err != nil {
		return fmt.Errorf("failed to parse expected query, %v", err)
	}
	actualValue, err := url.ParseQuery(actual)
	if err != nil {
		return fmt.Errorf("failed to parse actual query, %v", err)
	}

	if diff := cmp.Diff(expectValue, actualValue); len(diff) != 0 {
		return fmt.Errorf("query mismatch (-expect +actual):\n%s", diff)
	}

	return nil
}

// AssertURLQueryEqual compares two URL query strings. Emits a testing error,
// and returns false if the queries are not equal.
func AssertURLQueryEqual(t T, expect, actual string) bool {
	t.Helper()

	if err := URLQueryEqual(expect, actual); err != nil {
		t.Errorf("expect query equal, %v", err)
		return false
	}

	return true
}
