// Package v2 exposes common APIs for the classic HMAC-SHA1 object store
// request signature.
package v2

import (
	"strings"

	"github.com/objkit/objkit-go/logging"
)

// SignatureType specifies how the signature is transmitted.
type SignatureType int

const (
	// SignatureTypeHeader transmits signature via Authorization header (default).
	SignatureTypeHeader SignatureType = iota
	// SignatureTypeQueryString transmits signature via the AWSAccessKeyId,
	// Expires and Signature query parameters.
	SignatureTypeQueryString
)

// AuthorizationPrefix is the scheme of the Authorization header value,
// followed by a space and "<access key>:<signature>".
const AuthorizationPrefix = "AWS"

// AmzHeaderPrefix is the vendor header prefix. Headers with this prefix are
// part of the canonical string.
const AmzHeaderPrefix = "x-amz-"

// SubResources are the query parameters that take part in the canonical
// resource. Every other query parameter is excluded from the signature.
var SubResources = []string{
	"acl",
	"location",
	"logging",
	"notification",
	"partNumber",
	"policy",
	"requestPayment",
	"torrent",
	"uploadId",
	"uploads",
	"versionId",
	"versioning",
	"versions",
	"website",
}

// ResponseOverrides are the response override names. As headers they are
// always part of the canonical string.
var ResponseOverrides = []string{
	"response-content-type",
	"response-content-language",
	"response-expires",
	"response-cache-control",
	"response-content-disposition",
	"response-content-encoding",
}

// SignerOption applies configuration to a signer.
type SignerOption func(*SignerOptions)

// SignerOptions configures the classic signer.
type SignerOptions struct {
	// Query parameters signed in addition to SubResources. Names are matched
	// exactly.
	AdditionalSubResources []string

	// Logger receives the canonical string when LogSigning is set.
	Logger logging.Logger

	// Emit the canonical string and Authorization header at debug level.
	LogSigning bool
}

// SignedHeaderRules determines whether a request header should be included in
// the canonical string.
//
// By convention, IsSigned is invoked with lowercase values.
type SignedHeaderRules interface {
	IsSigned(string) bool
}

// SubResourceRules determines whether a query parameter is a sub-resource
// included in the canonical resource. Names are case sensitive.
type SubResourceRules interface {
	IsSubResource(string) bool
}

// DefaultHeaderRules signs vendor prefixed headers and the response
// override headers.
type DefaultHeaderRules struct{}

// IsSigned implements SignedHeaderRules.
func (DefaultHeaderRules) IsSigned(h string) bool {
	if strings.HasPrefix(h, AmzHeaderPrefix) {
		return true
	}
	for _, v := range ResponseOverrides {
		if h == v {
			return true
		}
	}
	return false
}

// SubResourceSet is a SubResourceRules backed by a set of names.
type SubResourceSet map[string]struct{}

// NewSubResourceSet returns the default sub-resource set extended with the
// additional names.
func NewSubResourceSet(additional ...string) SubResourceSet {
	s := make(SubResourceSet, len(SubResources)+len(additional))
	for _, v := range SubResources {
		s[v] = struct{}{}
	}
	for _, v := range additional {
		s[v] = struct{}{}
	}
	return s
}

// IsSubResource implements SubResourceRules.
func (s SubResourceSet) IsSubResource(name string) bool {
	_, ok := s[name]
	return ok
}
