package s3

import (
	"context"
	"net/url"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// DeleteObject removes an object. Unlike GetObject, a 404 response is an
// error, reported as a *objkit.ServiceError.
func (c *Client) DeleteObject(ctx context.Context, params *DeleteObjectInput, optFns ...func(*Options)) (*DeleteObjectOutput, error) {
	if params == nil {
		params = &DeleteObjectInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "DeleteObject", params, optFns, c.addOperationDeleteObjectMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*DeleteObjectOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// DeleteObjectInput is the input of DeleteObject.
type DeleteObjectInput struct {
	// The key of the object. This member is required.
	Key string

	VersionID string
}

func (in *DeleteObjectInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "DeleteObjectInput"}
	validateKey(&invalidParams, in.Key)
	return validationResult(&invalidParams)
}

func (in *DeleteObjectInput) requestDescriptor() (*RequestDescriptor, error) {
	desc := &RequestDescriptor{
		Method: VerbDelete,
		Key:    in.Key,
		Query:  url.Values{},
	}
	setQueryIfNotEmpty(desc.Query, "versionId", in.VersionID)
	return desc, nil
}

// DeleteObjectOutput is the output of DeleteObject.
type DeleteObjectOutput struct {
	// Whether the removed version was a delete marker.
	DeleteMarker bool
	VersionID    string

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodeDeleteObjectOutput(resp *objkithttp.Response) (interface{}, error) {
	h, err := decodeObjectHeaders(resp.Header)
	if err != nil {
		return nil, err
	}
	return &DeleteObjectOutput{
		DeleteMarker: h.DeleteMarker,
		VersionID:    h.VersionID,
	}, nil
}

func (c *Client) addOperationDeleteObjectMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodeDeleteObjectOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}
