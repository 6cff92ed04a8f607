package http

import (
	"fmt"

	"github.com/objkit/objkit-go/internal/uri"
)

// ValidateEndpointHost validates that the host string passed in is a valid RFC
// 3986 host. Returns error if the host is not valid.
func ValidateEndpointHost(host string) error {
	return uri.ValidateHost(host)
}

// ValidHostField returns an error if the Host of a built request is not a
// value that can be sent on the wire.
func ValidHostField(host string) error {
	if len(host) == 0 {
		return fmt.Errorf("request host must not be empty")
	}
	if err := ValidateEndpointHost(host); err != nil {
		return fmt.Errorf("invalid request host, %w", err)
	}
	return nil
}
