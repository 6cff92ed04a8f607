// Package sigv2 implements signing for the classic HMAC-SHA1 object store
// request signature, in both Authorization header and query string form.
package sigv2

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/objkit/objkit-go/httpauth/credentials"
	v2internal "github.com/objkit/objkit-go/httpauth/internal/v2"
	v2 "github.com/objkit/objkit-go/httpauth/v2"
)

// SignRequestInput is the set of inputs for header signing.
type SignRequestInput struct {
	// The input request, which will be modified in-place during signing.
	Request *http.Request

	// The credentials with which to sign the request.
	Credentials credentials.Credentials

	// Wall-clock time used for the Date header and the canonical string.
	// Defaults to time.Now() when zero. Resolved exactly once per request.
	Time time.Time
}

// PresignRequestInput is the set of inputs for query string signing.
type PresignRequestInput struct {
	// The input request. Its URL query receives the signature parameters.
	Request *http.Request

	// The credentials with which to sign the request.
	Credentials credentials.Credentials

	// The instant after which the presigned URL is rejected.
	Expires time.Time
}

// Signer signs requests with the classic HMAC-SHA1 signature.
type Signer struct {
	options v2.SignerOptions
}

// New returns an instance of Signer with applied options.
func New(opts ...v2.SignerOption) *Signer {
	options := v2.SignerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &Signer{options}
}

// SignRequest signs an HTTP request with the Authorization header. The Date
// header is set from the resolved signing time and always matches the date
// line of the canonical string.
func (s *Signer) SignRequest(in *SignRequestInput, opts ...v2.SignerOption) error {
	options := s.options
	for _, opt := range opts {
		opt(&options)
	}

	if in.Request == nil {
		return fmt.Errorf("request is required for signing")
	}

	signer := &v2internal.Signer{
		Request:     in.Request,
		Time:        v2internal.ResolveTime(in.Time),
		Credentials: in.Credentials,
		Options:     options,
	}
	return signer.Do()
}

// PresignRequest signs the request with query string authentication,
// returning the presigned URL. The request is modified in place.
func (s *Signer) PresignRequest(in *PresignRequestInput, opts ...v2.SignerOption) (string, error) {
	options := s.options
	for _, opt := range opts {
		opt(&options)
	}

	if in.Request == nil {
		return "", fmt.Errorf("request is required for presigning")
	}

	signer := &v2internal.Signer{
		Request:       in.Request,
		Credentials:   in.Credentials,
		Options:       options,
		Expires:       in.Expires,
		SignatureType: v2.SignatureTypeQueryString,
	}
	if err := signer.Do(); err != nil {
		return "", err
	}

	return in.Request.URL.String(), nil
}

// CanonicalString returns the string to sign for the request, using date for
// the date line. The request is not modified.
func CanonicalString(req *http.Request, date string, opts ...v2.SignerOption) string {
	var options v2.SignerOptions
	for _, opt := range opts {
		opt(&options)
	}

	signer := &v2internal.Signer{
		Request:          req,
		Options:          options,
		HeaderRules:      v2.DefaultHeaderRules{},
		SubResourceRules: v2.NewSubResourceSet(options.AdditionalSubResources...),
	}
	return signer.BuildCanonicalString(date)
}

// Sign returns the signature of a canonical string under the secret.
func Sign(canonical, secret string) string {
	return v2internal.SignString(canonical, secret)
}

// Verify reports whether the Authorization header of req carries a valid
// signature for the credentials. The Date header of req is used as signed.
func Verify(req *http.Request, creds credentials.Credentials, opts ...v2.SignerOption) bool {
	expect := fmt.Sprintf("%s %s:%s", v2.AuthorizationPrefix, creds.AccessKeyID,
		Sign(CanonicalString(req, req.Header.Get("Date"), opts...), creds.SecretAccessKey))
	return subtle.ConstantTimeCompare([]byte(req.Header.Get("Authorization")), []byte(expect)) == 1
}
