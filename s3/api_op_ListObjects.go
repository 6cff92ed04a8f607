package s3

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkittime "github.com/objkit/objkit-go/time"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// ListObjects returns some or all of the objects of the bucket, up to
// MaxKeys per call. Use ListObjectsPaginator to walk every page.
func (c *Client) ListObjects(ctx context.Context, params *ListObjectsInput, optFns ...func(*Options)) (*ListObjectsOutput, error) {
	if params == nil {
		params = &ListObjectsInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "ListObjects", params, optFns, c.addOperationListObjectsMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*ListObjectsOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// ListObjectsInput is the input of ListObjects.
type ListObjectsInput struct {
	// Limits the response to keys that begin with the prefix.
	Prefix string

	// Groups keys sharing a prefix up to the delimiter into CommonPrefixes.
	Delimiter string

	// The key to start listing after.
	Marker string

	// Maximum number of keys returned. Zero leaves the service default.
	MaxKeys int32
}

func (in *ListObjectsInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "ListObjectsInput"}
	if in.MaxKeys < 0 {
		invalidParams.Add(objkit.NewErrParamValue("MaxKeys", "must not be negative"))
	}
	return validationResult(&invalidParams)
}

func (in *ListObjectsInput) requestDescriptor() (*RequestDescriptor, error) {
	desc := &RequestDescriptor{
		Method: VerbGet,
		Query:  url.Values{},
	}
	setQueryIfNotEmpty(desc.Query, "prefix", in.Prefix)
	setQueryIfNotEmpty(desc.Query, "delimiter", in.Delimiter)
	setQueryIfNotEmpty(desc.Query, "marker", in.Marker)
	if in.MaxKeys > 0 {
		desc.Query.Set("max-keys", strconv.FormatInt(int64(in.MaxKeys), 10))
	}
	return desc, nil
}

// ListObjectsOutput is the output of ListObjects.
type ListObjectsOutput struct {
	Name        string
	Prefix      string
	Delimiter   string
	Marker      string
	MaxKeys     int32
	IsTruncated bool

	// Only set by the service when a Delimiter was requested. Use
	// NextMarker for the next page if set, else the key of the last entry of
	// Contents.
	NextMarker string

	Contents       []Object
	CommonPrefixes []CommonPrefix

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

type listBucketResult struct {
	Name           string               `xml:"Name"`
	Prefix         string               `xml:"Prefix"`
	Delimiter      string               `xml:"Delimiter"`
	Marker         string               `xml:"Marker"`
	NextMarker     string               `xml:"NextMarker"`
	MaxKeys        int32                `xml:"MaxKeys"`
	IsTruncated    bool                 `xml:"IsTruncated"`
	Contents       []listBucketEntry    `xml:"Contents"`
	CommonPrefixes []listBucketPrefixes `xml:"CommonPrefixes"`
}

type listBucketEntry struct {
	Key          string    `xml:"Key"`
	LastModified string    `xml:"LastModified"`
	ETag         string    `xml:"ETag"`
	Size         int64     `xml:"Size"`
	StorageClass string    `xml:"StorageClass"`
	Owner        *xmlOwner `xml:"Owner"`
}

type listBucketPrefixes struct {
	Prefix string `xml:"Prefix"`
}

type xmlOwner struct {
	ID          string `xml:"ID"`
	DisplayName string `xml:"DisplayName"`
}

func (o *xmlOwner) owner() *Owner {
	if o == nil {
		return nil
	}
	return &Owner{ID: o.ID, DisplayName: o.DisplayName}
}

func decodeListObjectsOutput(resp *objkithttp.Response) (interface{}, error) {
	var doc listBucketResult
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty listing document")
		}
		return nil, fmt.Errorf("failed to decode listing document, %w", err)
	}

	out := &ListObjectsOutput{
		Name:        doc.Name,
		Prefix:      doc.Prefix,
		Delimiter:   doc.Delimiter,
		Marker:      doc.Marker,
		NextMarker:  doc.NextMarker,
		MaxKeys:     doc.MaxKeys,
		IsTruncated: doc.IsTruncated,
	}

	for _, e := range doc.Contents {
		obj := Object{
			Key:          e.Key,
			ETag:         e.ETag,
			Size:         e.Size,
			StorageClass: e.StorageClass,
			Owner:        e.Owner.owner(),
		}
		if len(e.LastModified) != 0 {
			t, err := objkittime.ParseDateTime(e.LastModified)
			if err != nil {
				return nil, fmt.Errorf("invalid LastModified %q of key %q, %w", e.LastModified, e.Key, err)
			}
			obj.LastModified = &t
		}
		out.Contents = append(out.Contents, obj)
	}

	for _, p := range doc.CommonPrefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, CommonPrefix{Prefix: p.Prefix})
	}

	return out, nil
}

func (c *Client) addOperationListObjectsMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodeListObjectsOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}

// ListObjectsAPIClient is a client that implements the ListObjects
// operation.
type ListObjectsAPIClient interface {
	ListObjects(context.Context, *ListObjectsInput, ...func(*Options)) (*ListObjectsOutput, error)
}

var _ ListObjectsAPIClient = (*Client)(nil)

// ListObjectsPaginatorOptions is the paginator options for ListObjects
type ListObjectsPaginatorOptions struct {
	// Maximum number of keys per page. Zero leaves the service default.
	Limit int32

	// Set to true if pagination should stop if the service returns a
	// pagination token that matches the most recent token provided to the
	// service.
	StopOnDuplicateToken bool
}

// ListObjectsPaginator is a paginator for ListObjects
type ListObjectsPaginator struct {
	options   ListObjectsPaginatorOptions
	client    ListObjectsAPIClient
	params    *ListObjectsInput
	nextToken *string
	firstPage bool
}

// NewListObjectsPaginator returns a new ListObjectsPaginator
func NewListObjectsPaginator(client ListObjectsAPIClient, params *ListObjectsInput, optFns ...func(*ListObjectsPaginatorOptions)) *ListObjectsPaginator {
	if params == nil {
		params = &ListObjectsInput{}
	}

	options := ListObjectsPaginatorOptions{}
	if params.MaxKeys != 0 {
		options.Limit = params.MaxKeys
	}

	for _, fn := range optFns {
		fn(&options)
	}

	var nextToken *string
	if len(params.Marker) != 0 {
		marker := params.Marker
		nextToken = &marker
	}

	return &ListObjectsPaginator{
		options:   options,
		client:    client,
		params:    params,
		firstPage: true,
		nextToken: nextToken,
	}
}

// HasMorePages returns a boolean indicating whether more pages are available
func (p *ListObjectsPaginator) HasMorePages() bool {
	return p.firstPage || (p.nextToken != nil && len(*p.nextToken) != 0)
}

// NextPage retrieves the next ListObjects page.
func (p *ListObjectsPaginator) NextPage(ctx context.Context, optFns ...func(*Options)) (*ListObjectsOutput, error) {
	if !p.HasMorePages() {
		return nil, fmt.Errorf("no more pages available")
	}

	params := *p.params
	params.Marker = ""
	if p.nextToken != nil {
		params.Marker = *p.nextToken
	}
	params.MaxKeys = p.options.Limit

	result, err := p.client.ListObjects(ctx, &params, optFns...)
	if err != nil {
		return nil, err
	}
	p.firstPage = false

	prevToken := p.nextToken
	p.nextToken = nil
	if result.IsTruncated {
		if token := nextMarker(result); len(token) != 0 {
			p.nextToken = &token
		}
	}

	if p.options.StopOnDuplicateToken &&
		prevToken != nil &&
		p.nextToken != nil &&
		*prevToken == *p.nextToken {
		p.nextToken = nil
	}

	return result, nil
}

// nextMarker returns the marker of the page following result.
func nextMarker(result *ListObjectsOutput) string {
	if len(result.NextMarker) != 0 {
		return result.NextMarker
	}
	if n := len(result.Contents); n > 0 {
		return result.Contents[n-1].Key
	}
	return ""
}
