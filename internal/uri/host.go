// Package uri validates the host portion of endpoint URLs.
package uri

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// maxHostLen is the longest host name accepted, excluding a trailing dot.
const maxHostLen = 255

// ValidPortNumber returns whether the port is valid RFC 3986 port.
func ValidPortNumber(port string) bool {
	i, err := strconv.Atoi(port)
	if err != nil {
		return false
	}

	if i < 0 || i > 65535 {
		return false
	}
	return true
}

// ValidHostLabel returns whether the label is a valid host label. Besides the
// RFC 3986 letters, digits and hyphens, underscores are accepted since
// container and service discovery names commonly carry them.
func ValidHostLabel(label string) bool {
	if l := len(label); l < 1 || l > 63 {
		return false
	}
	if c := label[0]; !isValidHostLabelFirstCharacter(rune(c)) {
		return false
	}

	for _, r := range label[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r == '-', r == '_':
		default:
			return false
		}
	}

	return true
}

func isValidHostLabelFirstCharacter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// ValidateHost returns an error if host, optionally suffixed with a
// ":port", is neither an IP literal nor a dot separated sequence of valid
// host labels. IPv6 literals must be bracketed. A single trailing dot is
// allowed for fully qualified names.
func ValidateHost(host string) error {
	name, err := splitHost(host)
	if err != nil {
		return err
	}

	if strings.HasPrefix(host, "[") {
		if ip := net.ParseIP(name); ip == nil || ip.To4() != nil {
			return fmt.Errorf("invalid IPv6 literal %q in host %q", name, host)
		}
		return nil
	}
	if net.ParseIP(name) != nil {
		return nil
	}

	name = strings.TrimSuffix(name, ".")
	if len(name) == 0 {
		return fmt.Errorf("host name must not be empty, %q", host)
	}
	if len(name) > maxHostLen {
		return fmt.Errorf("host name %q exceeds %d characters", host, maxHostLen)
	}

	for _, label := range strings.Split(name, ".") {
		if !ValidHostLabel(label) {
			return fmt.Errorf("invalid host label %q in host %q", label, host)
		}
	}
	return nil
}

// splitHost returns the name portion of host, validating the port if one is
// present.
func splitHost(host string) (string, error) {
	bracketed := strings.HasPrefix(host, "[")
	if bracketed && strings.HasSuffix(host, "]") {
		return host[1 : len(host)-1], nil
	}
	if !bracketed && !strings.Contains(host, ":") {
		return host, nil
	}

	name, port, err := net.SplitHostPort(host)
	if err != nil {
		return "", fmt.Errorf("invalid host %q, %w", host, err)
	}
	if !ValidPortNumber(port) {
		return "", fmt.Errorf("invalid port number %q in host %q", port, host)
	}
	if len(name) == 0 {
		return "", fmt.Errorf("host name must not be empty, %q", host)
	}
	return name, nil
}
