package s3

import (
	"context"
	"time"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// HeadObject retrieves the metadata of an object without its body. It is the
// existence probe of the client: a missing object returns a nil output and a
// nil error.
func (c *Client) HeadObject(ctx context.Context, params *HeadObjectInput, optFns ...func(*Options)) (*HeadObjectOutput, error) {
	if params == nil {
		params = &HeadObjectInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "HeadObject", params, optFns, c.addOperationHeadObjectMiddlewares)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	out := result.(*HeadObjectOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// HeadObjectInput is the input of HeadObject.
type HeadObjectInput struct {
	// The key of the object. This member is required.
	Key string

	VersionID string
}

func (in *HeadObjectInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "HeadObjectInput"}
	validateKey(&invalidParams, in.Key)
	return validationResult(&invalidParams)
}

func (in *HeadObjectInput) requestDescriptor() (*RequestDescriptor, error) {
	get := GetObjectInput{Key: in.Key, VersionID: in.VersionID}
	return get.descriptor(VerbHead), nil
}

// HeadObjectOutput is the output of HeadObject.
type HeadObjectOutput struct {
	ContentLength int64
	ContentType   string
	ETag          string
	LastModified  *time.Time
	VersionID     string
	Metadata      map[string]string

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodeHeadObjectOutput(resp *objkithttp.Response) (interface{}, error) {
	h, err := decodeObjectHeaders(resp.Header)
	if err != nil {
		return nil, err
	}

	return &HeadObjectOutput{
		ContentLength: h.ContentLength,
		ContentType:   h.ContentType,
		ETag:          h.ETag,
		LastModified:  h.LastModified,
		VersionID:     h.VersionID,
		Metadata:      h.Metadata,
	}, nil
}

func (c *Client) addOperationHeadObjectMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsAbsent, decodeHeadObjectOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}
