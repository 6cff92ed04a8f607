package s3

import (
	"io"
	"net/http"
	"net/url"
	"time"
)

// Verb is the request method of a RequestDescriptor. It is fixed when the
// descriptor is built and is the only source of the method used for both
// dispatch and signing.
type Verb int

// Enumeration values for Verb
const (
	VerbGet Verb = iota + 1
	VerbPut
	VerbDelete
	VerbHead
)

// Method returns the HTTP method of the verb, or the empty string for an
// unknown verb.
func (v Verb) Method() string {
	switch v {
	case VerbGet:
		return http.MethodGet
	case VerbPut:
		return http.MethodPut
	case VerbDelete:
		return http.MethodDelete
	case VerbHead:
		return http.MethodHead
	default:
		return ""
	}
}

func (v Verb) String() string {
	if m := v.Method(); len(m) != 0 {
		return m
	}
	return "Verb(unknown)"
}

// RequestDescriptor describes one request against the client's bucket. An
// empty Key addresses the bucket itself.
type RequestDescriptor struct {
	Method Verb
	Key    string

	// Query parameters. Only sub-resource parameters take part in the
	// signature.
	Query  url.Values
	Header http.Header

	Body io.Reader
	// ContentLength of Body. Values below one mean the length is discovered
	// from Body when possible.
	ContentLength int64
	ContentType   string
}

// ObjectCannedACL is a predefined grant set applied to an object.
type ObjectCannedACL string

// Enum values for ObjectCannedACL
const (
	ObjectCannedACLPrivate                ObjectCannedACL = "private"
	ObjectCannedACLPublicRead             ObjectCannedACL = "public-read"
	ObjectCannedACLPublicReadWrite        ObjectCannedACL = "public-read-write"
	ObjectCannedACLAuthenticatedRead      ObjectCannedACL = "authenticated-read"
	ObjectCannedACLBucketOwnerRead        ObjectCannedACL = "bucket-owner-read"
	ObjectCannedACLBucketOwnerFullControl ObjectCannedACL = "bucket-owner-full-control"
)

// Values returns all known values for ObjectCannedACL.
func (ObjectCannedACL) Values() []ObjectCannedACL {
	return []ObjectCannedACL{
		ObjectCannedACLPrivate,
		ObjectCannedACLPublicRead,
		ObjectCannedACLPublicReadWrite,
		ObjectCannedACLAuthenticatedRead,
		ObjectCannedACLBucketOwnerRead,
		ObjectCannedACLBucketOwnerFullControl,
	}
}

// Permission is the access granted by a Grant.
type Permission string

// Enum values for Permission
const (
	PermissionFullControl Permission = "FULL_CONTROL"
	PermissionWrite       Permission = "WRITE"
	PermissionWriteACP    Permission = "WRITE_ACP"
	PermissionRead        Permission = "READ"
	PermissionReadACP     Permission = "READ_ACP"
)

// GranteeType is the kind of a grantee.
type GranteeType string

// Enum values for GranteeType
const (
	GranteeTypeCanonicalUser         GranteeType = "CanonicalUser"
	GranteeTypeAmazonCustomerByEmail GranteeType = "AmazonCustomerByEmail"
	GranteeTypeGroup                 GranteeType = "Group"
)

// Object is an entry of a bucket listing.
type Object struct {
	Key          string
	LastModified *time.Time
	ETag         string
	Size         int64
	StorageClass string
	Owner        *Owner
}

// CommonPrefix is a key prefix rolled up by the listing delimiter.
type CommonPrefix struct {
	Prefix string
}

// Owner is the owner of a bucket or object.
type Owner struct {
	ID          string
	DisplayName string
}

// Grantee is the recipient of a Grant.
type Grantee struct {
	Type         GranteeType
	ID           string
	DisplayName  string
	EmailAddress string
	URI          string
}

// Grant is one permission of an access control list.
type Grant struct {
	Grantee    *Grantee
	Permission Permission
}

// AccessControlPolicy is the owner and grants of an object.
type AccessControlPolicy struct {
	Owner  *Owner
	Grants []Grant
}
