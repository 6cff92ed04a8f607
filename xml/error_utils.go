package xml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// ErrorDocument is the decoded form of a service error response body.
type ErrorDocument struct {
	Code      string `xml:"Code"`
	Message   string `xml:"Message"`
	RequestID string `xml:"RequestId"`
	HostID    string `xml:"HostId"`
	Resource  string `xml:"Resource"`
}

type errorResponse struct {
	XMLName xml.Name
	Err     *ErrorDocument `xml:"Error"`

	// top level members, the document itself for an <Error> root
	ErrorDocument
}

// DecodeErrorDocument decodes an error document from r. The document root
// is either <Error> or an <ErrorResponse> wrapping an <Error> element. An
// error is returned if r is empty, is not XML, or has some other root.
// A decoded document with an empty Code is returned without error, callers
// decide whether that is acceptable.
func DecodeErrorDocument(r io.Reader) (ErrorDocument, error) {
	var resp errorResponse
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		if err == io.EOF {
			return ErrorDocument{}, fmt.Errorf("empty error document")
		}
		return ErrorDocument{}, fmt.Errorf("failed to decode error document, %w", err)
	}

	switch resp.XMLName.Local {
	case "Error":
		return resp.ErrorDocument, nil
	case "ErrorResponse":
		if resp.Err == nil {
			return resp.ErrorDocument, nil
		}
		doc := *resp.Err
		if len(doc.RequestID) == 0 {
			doc.RequestID = resp.ErrorDocument.RequestID
		}
		return doc, nil
	default:
		return ErrorDocument{}, fmt.Errorf("unexpected error document root element %q", resp.XMLName.Local)
	}
}

// GetResponseErrorCode returns the error code from an error document.
func GetResponseErrorCode(r io.Reader) (string, error) {
	doc, err := DecodeErrorDocument(r)
	if err != nil {
		return "", err
	}
	return doc.Code, nil
}
