package http

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
)

const contentMD5Header = "Content-Md5"

// contentMD5Checksum computes the Content-MD5 header of a seekable request
// body. The digest takes part in the request signature, so the middleware
// runs in the build step before signing.
type contentMD5Checksum struct{}

// AddContentMD5Middleware adds the Content-MD5 middleware to the stack's build
// step.
func AddContentMD5Middleware(stack *middleware.Stack) error {
	return stack.Build.Add(&contentMD5Checksum{}, middleware.After)
}

// ID returns the identifier for the Content-MD5 middleware.
func (m *contentMD5Checksum) ID() string { return id.ContentMD5 }

// HandleBuild computes the md5 digest of the request stream and sets the
// Content-MD5 header, unless the header is already present.
func (m *contentMD5Checksum) HandleBuild(
	ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler,
) (
	out middleware.BuildOutput, metadata middleware.Metadata, err error,
) {
	req, ok := in.Request.(*Request)
	if !ok {
		return out, metadata, fmt.Errorf("unknown request type %T", in.Request)
	}

	if v := req.Header.Get(contentMD5Header); len(v) != 0 {
		return next.HandleBuild(ctx, in)
	}

	stream := req.GetStream()
	if stream == nil {
		return next.HandleBuild(ctx, in)
	}
	if !req.IsStreamSeekable() {
		return out, metadata, fmt.Errorf("unseekable stream is not supported for computing md5 checksum")
	}

	v, err := computeMD5Checksum(stream)
	if err != nil {
		return out, metadata, fmt.Errorf("error computing md5 checksum, %w", err)
	}

	if err := req.RewindStream(); err != nil {
		return out, metadata, fmt.Errorf("error rewinding request stream after computing md5 checksum, %w", err)
	}

	req.Header.Set(contentMD5Header, v)
	return next.HandleBuild(ctx, in)
}

// computeMD5Checksum computes base64 md5 checksum of an io.Reader's contents.
func computeMD5Checksum(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to compute md5 hash of stream, %w", err)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
