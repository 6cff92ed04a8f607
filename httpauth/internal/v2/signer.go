package v2

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/objkit/objkit-go/httpauth/credentials"
	v2 "github.com/objkit/objkit-go/httpauth/v2"
	"github.com/objkit/objkit-go/logging"
	objkittime "github.com/objkit/objkit-go/time"
)

const (
	dateHeader          = "Date"
	contentMD5Header    = "Content-Md5"
	contentTypeHeader   = "Content-Type"
	authorizationHeader = "Authorization"
)

// Signer is the implementation structure for both variants of the classic
// signature.
type Signer struct {
	Request     *http.Request
	Time        time.Time
	Credentials credentials.Credentials
	Options     v2.SignerOptions

	HeaderRules      v2.SignedHeaderRules
	SubResourceRules v2.SubResourceRules

	// Expires is the query string signature expiry instant. Only used with
	// SignatureTypeQueryString.
	Expires time.Time

	SignatureType v2.SignatureType
}

// Do performs signing, modifying the request in-place with the signature.
//
// Do should be called exactly once for a configured Signer. The behavior of
// doing otherwise is undefined.
func (s *Signer) Do() error {
	if !s.Credentials.HasKeys() {
		return fmt.Errorf("access key id and secret access key are required to sign")
	}
	s.init()

	var dateValue string
	if s.SignatureType == v2.SignatureTypeQueryString {
		if s.Expires.IsZero() {
			return fmt.Errorf("expiry time is required for query string signing")
		}
		dateValue = strconv.FormatInt(s.Expires.Unix(), 10)
	} else {
		// The instant is formatted once, the header and the canonical string
		// share the same value.
		dateValue = objkittime.FormatHTTPDate(s.Time)
		s.Request.Header.Set(dateHeader, dateValue)
	}

	canonical := s.BuildCanonicalString(dateValue)
	signature := SignString(canonical, s.Credentials.SecretAccessKey)

	if s.SignatureType == v2.SignatureTypeQueryString {
		query := s.Request.URL.Query()
		query.Set("AWSAccessKeyId", s.Credentials.AccessKeyID)
		query.Set("Expires", dateValue)
		query.Set("Signature", signature)
		s.Request.URL.RawQuery = query.Encode()
	} else {
		s.Request.Header.Set(authorizationHeader, s.buildAuthorizationHeader(signature))
	}

	if s.Options.LogSigning && s.Options.Logger != nil {
		s.Options.Logger.Logf(logging.Debug, "Request Signature:\n---[ CANONICAL STRING ]-----------------------------\n%s\n-----------------------------------------------------", canonical)
	}

	return nil
}

func (s *Signer) init() {
	if s.HeaderRules == nil {
		s.HeaderRules = v2.DefaultHeaderRules{}
	}
	if s.SubResourceRules == nil {
		s.SubResourceRules = v2.NewSubResourceSet(s.Options.AdditionalSubResources...)
	}
	s.Time = ResolveTime(s.Time)
}

// BuildCanonicalString returns the string to sign for the request, using
// dateValue for the date line.
func (s *Signer) BuildCanonicalString(dateValue string) string {
	var b strings.Builder

	b.WriteString(s.Request.Method)
	b.WriteByte('\n')
	b.WriteString(s.Request.Header.Get(contentMD5Header))
	b.WriteByte('\n')
	b.WriteString(s.Request.Header.Get(contentTypeHeader))
	b.WriteByte('\n')
	b.WriteString(dateValue)
	b.WriteByte('\n')

	b.WriteString(s.buildCanonicalHeaders())
	b.WriteString(s.buildCanonicalResource())

	return b.String()
}

func (s *Signer) buildCanonicalHeaders() string {
	var names []string
	signedHeaders := map[string][]string{}

	// step 1: find what we're signing. Keys differing only in case are
	// merged in sorted key order so the value order is stable.
	keys := make([]string, 0, len(s.Request.Header))
	for header := range s.Request.Header {
		keys = append(keys, header)
	}
	sort.Strings(keys)

	for _, header := range keys {
		lowercase := strings.ToLower(header)
		if !s.HeaderRules.IsSigned(lowercase) {
			continue
		}

		if _, ok := signedHeaders[lowercase]; !ok {
			names = append(names, lowercase)
		}
		signedHeaders[lowercase] = append(signedHeaders[lowercase], s.Request.Header[header]...)
	}
	sort.Strings(names)

	// step 2: indexing off of the sorted names, build the canonical lines
	var ch strings.Builder
	for _, name := range names {
		ch.WriteString(name)
		ch.WriteRune(':')

		// headers can have multiple values
		values := signedHeaders[name]
		for j, value := range values {
			ch.WriteString(strings.TrimSpace(value))
			if j < len(values)-1 {
				ch.WriteRune(',')
			}
		}
		ch.WriteRune('\n')
	}

	return ch.String()
}

func (s *Signer) buildCanonicalResource() string {
	resource := s.Request.URL.EscapedPath()
	if len(resource) == 0 {
		resource = "/"
	}

	query := s.Request.URL.Query()
	var keys []string
	for key := range query {
		if s.SubResourceRules.IsSubResource(key) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return resource
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		for _, value := range query[key] {
			if len(value) == 0 {
				parts = append(parts, key)
			} else {
				parts = append(parts, key+"="+value)
			}
		}
	}

	return resource + "?" + strings.Join(parts, "&")
}

func (s *Signer) buildAuthorizationHeader(signature string) string {
	return fmt.Sprintf("%s %s:%s", v2.AuthorizationPrefix, s.Credentials.AccessKeyID, signature)
}

// SignString computes the base64 encoded HMAC-SHA1 of the canonical string,
// keyed with the raw bytes of the secret.
func SignString(canonical, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(canonical))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return strings.TrimRight(sig, "\r\n")
}

// ResolveTime initializes a time value for signing.
func ResolveTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
