// Package credentials exposes container types for the key material used to
// authenticate object store requests.
package credentials

// Credentials describes a shared secret identity. Both fields are required to
// sign a request.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// HasKeys reports whether both the access key and the secret are set.
func (c Credentials) HasKeys() bool {
	return len(c.AccessKeyID) != 0 && len(c.SecretAccessKey) != 0
}
