package s3

import (
	"bytes"
	"context"
	"net/http"

	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
	objkitxml "github.com/objkit/objkit-go/xml"
)

const xmlNamespace = "http://s3.amazonaws.com/doc/2006-03-01/"

// CreateBucket creates the client's bucket. A bucket that already exists is
// reported as a *objkit.ServiceError of kind objkit.KindBucketAlreadyExists
// or objkit.KindBucketAlreadyOwnedByYou.
func (c *Client) CreateBucket(ctx context.Context, params *CreateBucketInput, optFns ...func(*Options)) (*CreateBucketOutput, error) {
	if params == nil {
		params = &CreateBucketInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "CreateBucket", params, optFns, c.addOperationCreateBucketMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*CreateBucketOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// CreateBucketInput is the input of CreateBucket.
type CreateBucketInput struct {
	// Region the bucket is created in. The service default is used when
	// empty.
	LocationConstraint string

	// Canned ACL applied to the bucket.
	ACL ObjectCannedACL
}

func (in *CreateBucketInput) requestDescriptor() (*RequestDescriptor, error) {
	desc := &RequestDescriptor{
		Method: VerbPut,
		Header: http.Header{},
	}
	setHeaderIfNotEmpty(desc.Header, aclHeader, string(in.ACL))

	if len(in.LocationConstraint) != 0 {
		enc := objkitxml.NewEncoder()
		root := enc.RootElement(objkitxml.StartElement{
			Name: objkitxml.Name{Local: "CreateBucketConfiguration"},
			Attr: []objkitxml.Attr{objkitxml.NewNamespaceAttribute(xmlNamespace)},
		})
		root.MemberElement(objkitxml.StartElement{
			Name: objkitxml.Name{Local: "LocationConstraint"},
		}).String(in.LocationConstraint)
		root.Close()

		desc.Body = bytes.NewReader(enc.Bytes())
		desc.ContentType = "application/xml"
	}

	return desc, nil
}

// CreateBucketOutput is the output of CreateBucket.
type CreateBucketOutput struct {
	// The location of the created bucket.
	Location string

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodeCreateBucketOutput(resp *objkithttp.Response) (interface{}, error) {
	return &CreateBucketOutput{Location: resp.Header.Get("Location")}, nil
}

func (c *Client) addOperationCreateBucketMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodeCreateBucketOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}
