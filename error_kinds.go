package objkit

import (
	"sort"
	"sync"
)

// ErrorKind is a stable, comparable tag for one service error code. Two
// ErrorKind values are equal if and only if they were minted for the same
// code string. The zero value is not a valid kind.
type ErrorKind struct {
	k *errorKind
}

type errorKind struct {
	code string
}

// Code returns the service error code the kind was minted for.
func (k ErrorKind) Code() string {
	if k.k == nil {
		return ""
	}
	return k.k.code
}

// String returns the error code.
func (k ErrorKind) String() string { return k.Code() }

// Error allows an ErrorKind to be used as an errors.Is target.
func (k ErrorKind) Error() string { return "error kind " + k.Code() }

// IsZero returns whether the kind was never minted.
func (k ErrorKind) IsZero() bool { return k.k == nil }

// errorKinds is the process wide registry of error codes seen so far. It only
// grows; entries are never removed or replaced for the life of the process.
var errorKinds sync.Map // map[string]*errorKind

// ErrorKindFor returns the ErrorKind for code, minting it on first sighting.
// Concurrent first sightings of the same code return the same kind.
func ErrorKindFor(code string) ErrorKind {
	if v, ok := errorKinds.Load(code); ok {
		return ErrorKind{k: v.(*errorKind)}
	}
	v, _ := errorKinds.LoadOrStore(code, &errorKind{code: code})
	return ErrorKind{k: v.(*errorKind)}
}

// LookupErrorKind returns the ErrorKind for code without minting one.
func LookupErrorKind(code string) (ErrorKind, bool) {
	v, ok := errorKinds.Load(code)
	if !ok {
		return ErrorKind{}, false
	}
	return ErrorKind{k: v.(*errorKind)}, true
}

// ErrorKinds returns a snapshot of every kind minted so far, sorted by code.
func ErrorKinds() []ErrorKind {
	var kinds []ErrorKind
	errorKinds.Range(func(_, v interface{}) bool {
		kinds = append(kinds, ErrorKind{k: v.(*errorKind)})
		return true
	})
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Code() < kinds[j].Code()
	})
	return kinds
}

// Error kinds callers commonly act on. They are minted when the package is
// initialized.
var (
	KindAccessDenied            = ErrorKindFor("AccessDenied")
	KindBucketAlreadyExists     = ErrorKindFor("BucketAlreadyExists")
	KindBucketAlreadyOwnedByYou = ErrorKindFor("BucketAlreadyOwnedByYou")
	KindInvalidAccessKeyID      = ErrorKindFor("InvalidAccessKeyId")
	KindNoSuchBucket            = ErrorKindFor("NoSuchBucket")
	KindNoSuchKey               = ErrorKindFor("NoSuchKey")
	KindNotFound                = ErrorKindFor("NotFound")
	KindNotModified             = ErrorKindFor("NotModified")
	KindRequestTimeTooSkewed    = ErrorKindFor("RequestTimeTooSkewed")
	KindSignatureDoesNotMatch   = ErrorKindFor("SignatureDoesNotMatch")
)
