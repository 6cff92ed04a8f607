package s3

import (
	"context"
	"io"
	"net/http"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// PutObject stores an object, replacing any object with the same key.
func (c *Client) PutObject(ctx context.Context, params *PutObjectInput, optFns ...func(*Options)) (*PutObjectOutput, error) {
	if params == nil {
		params = &PutObjectInput{}
	}
	if params.ComputeContentMD5 {
		optFns = append(optFns[:len(optFns):len(optFns)], WithAPIOptions(objkithttp.AddContentMD5Middleware))
	}

	result, metadata, err := c.invokeOperation(ctx, "PutObject", params, optFns, c.addOperationPutObjectMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*PutObjectOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// PutObjectInput is the input of PutObject.
type PutObjectInput struct {
	// The key of the object. This member is required.
	Key string

	// Object data. A seekable Body has its length discovered when
	// ContentLength is not set; other readers require ContentLength.
	Body io.Reader

	// Size of Body in bytes.
	ContentLength int64

	ContentType        string
	CacheControl       string
	ContentDisposition string
	ContentEncoding    string

	// Base64 encoded MD5 digest of Body. It is computed from a seekable Body
	// when ComputeContentMD5 is set and the value is empty.
	ContentMD5        string
	ComputeContentMD5 bool

	// Canned ACL applied to the object.
	ACL ObjectCannedACL

	// User metadata, sent as x-amz-meta-* headers.
	Metadata map[string]string
}

func (in *PutObjectInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "PutObjectInput"}
	validateKey(&invalidParams, in.Key)
	if in.ContentLength < 0 {
		invalidParams.Add(objkit.NewErrParamValue("ContentLength", "must not be negative"))
	}
	return validationResult(&invalidParams)
}

func (in *PutObjectInput) requestDescriptor() (*RequestDescriptor, error) {
	desc := &RequestDescriptor{
		Method:        VerbPut,
		Key:           in.Key,
		Header:        http.Header{},
		Body:          in.Body,
		ContentLength: in.ContentLength,
		ContentType:   in.ContentType,
	}

	setHeaderIfNotEmpty(desc.Header, "Cache-Control", in.CacheControl)
	setHeaderIfNotEmpty(desc.Header, "Content-Disposition", in.ContentDisposition)
	setHeaderIfNotEmpty(desc.Header, "Content-Encoding", in.ContentEncoding)
	setHeaderIfNotEmpty(desc.Header, "Content-Md5", in.ContentMD5)
	setHeaderIfNotEmpty(desc.Header, aclHeader, string(in.ACL))
	setMetadataHeaders(desc.Header, in.Metadata)

	return desc, nil
}

// PutObjectOutput is the output of PutObject.
type PutObjectOutput struct {
	ETag      string
	VersionID string

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodePutObjectOutput(resp *objkithttp.Response) (interface{}, error) {
	return &PutObjectOutput{
		ETag:      resp.Header.Get("ETag"),
		VersionID: resp.Header.Get("X-Amz-Version-Id"),
	}, nil
}

func (c *Client) addOperationPutObjectMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodePutObjectOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	if err := addClientMiddlewares(stack, options); err != nil {
		return err
	}
	return objkithttp.ValidateContentLengthHeader(stack)
}
