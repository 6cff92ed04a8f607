package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
)

var validChars = map[rune]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true, '*': true, '+': true,
	'-': true, '.': true, '^': true, '_': true, '`': true, '|': true, '~': true,
}

// UserAgentBuilder is a builder for a HTTP User-Agent string.
type UserAgentBuilder struct {
	sb strings.Builder
}

// NewUserAgentBuilder returns a new UserAgentBuilder.
func NewUserAgentBuilder() *UserAgentBuilder {
	return &UserAgentBuilder{sb: strings.Builder{}}
}

// AddKey adds the named component/product to the agent string
func (u *UserAgentBuilder) AddKey(key string) {
	u.appendTo(key)
}

// AddKeyValue adds the named product to the agent string with the given
// version, as "key/value".
func (u *UserAgentBuilder) AddKeyValue(key, value string) {
	u.appendTo(key + "/" + strings.Map(rules, value))
}

// Build returns the constructed User-Agent string. May be called multiple times.
func (u *UserAgentBuilder) Build() string {
	return u.sb.String()
}

func (u *UserAgentBuilder) appendTo(value string) {
	if u.sb.Len() > 0 {
		u.sb.WriteRune(' ')
	}
	u.sb.WriteString(value)
}

func rules(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
		return r
	case validChars[r]:
		return r
	default:
		return '-'
	}
}

// UserAgentMiddleware sets the User-Agent header of the request. The header
// is not part of the canonical string, so it may be set in any build step
// position.
type UserAgentMiddleware struct {
	value string
}

// AddUserAgentMiddleware adds a UserAgentMiddleware with the agent value built
// by b to the stack's build step.
func AddUserAgentMiddleware(stack *middleware.Stack, b *UserAgentBuilder) error {
	return stack.Build.Add(&UserAgentMiddleware{value: b.Build()}, middleware.After)
}

// ID returns the identifier for the UserAgentMiddleware.
func (m *UserAgentMiddleware) ID() string { return id.UserAgent }

// HandleBuild sets the User-Agent header, appending to a caller provided
// value if one is present.
func (m *UserAgentMiddleware) HandleBuild(
	ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler,
) (
	out middleware.BuildOutput, metadata middleware.Metadata, err error,
) {
	req, ok := in.Request.(*Request)
	if !ok {
		return out, metadata, fmt.Errorf("unknown request type %T", in.Request)
	}

	if len(m.value) != 0 {
		if v := req.Header.Get("User-Agent"); len(v) != 0 {
			req.Header.Set("User-Agent", v+" "+m.value)
		} else {
			req.Header.Set("User-Agent", m.value)
		}
	}

	return next.HandleBuild(ctx, in)
}
