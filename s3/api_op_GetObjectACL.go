package s3

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
)

// GetObjectACL returns the access control list of an object.
func (c *Client) GetObjectACL(ctx context.Context, params *GetObjectACLInput, optFns ...func(*Options)) (*GetObjectACLOutput, error) {
	if params == nil {
		params = &GetObjectACLInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "GetObjectACL", params, optFns, c.addOperationGetObjectACLMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*GetObjectACLOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// GetObjectACLInput is the input of GetObjectACL.
type GetObjectACLInput struct {
	// The key of the object. This member is required.
	Key string

	VersionID string
}

func (in *GetObjectACLInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "GetObjectACLInput"}
	validateKey(&invalidParams, in.Key)
	return validationResult(&invalidParams)
}

func (in *GetObjectACLInput) requestDescriptor() (*RequestDescriptor, error) {
	return aclDescriptor(VerbGet, in.Key, in.VersionID), nil
}

// aclDescriptor addresses the acl sub-resource of key.
func aclDescriptor(verb Verb, key, versionID string) *RequestDescriptor {
	desc := &RequestDescriptor{
		Method: verb,
		Key:    key,
		Query:  url.Values{"acl": []string{""}},
	}
	setQueryIfNotEmpty(desc.Query, "versionId", versionID)
	return desc
}

// GetObjectACLOutput is the output of GetObjectACL.
type GetObjectACLOutput struct {
	Owner  *Owner
	Grants []Grant

	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

type xmlAccessControlPolicy struct {
	XMLName xml.Name   `xml:"AccessControlPolicy"`
	Owner   *xmlOwner  `xml:"Owner"`
	Grants  []xmlGrant `xml:"AccessControlList>Grant"`
}

type xmlGrant struct {
	Grantee    *xmlGrantee `xml:"Grantee"`
	Permission string      `xml:"Permission"`
}

type xmlGrantee struct {
	Type         string `xml:"type,attr"`
	ID           string `xml:"ID"`
	DisplayName  string `xml:"DisplayName"`
	EmailAddress string `xml:"EmailAddress"`
	URI          string `xml:"URI"`
}

func decodeGetObjectACLOutput(resp *objkithttp.Response) (interface{}, error) {
	var doc xmlAccessControlPolicy
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty access control policy document")
		}
		return nil, fmt.Errorf("failed to decode access control policy document, %w", err)
	}

	out := &GetObjectACLOutput{Owner: doc.Owner.owner()}
	for _, g := range doc.Grants {
		grant := Grant{Permission: Permission(g.Permission)}
		if g.Grantee != nil {
			grant.Grantee = &Grantee{
				Type:         GranteeType(g.Grantee.Type),
				ID:           g.Grantee.ID,
				DisplayName:  g.Grantee.DisplayName,
				EmailAddress: g.Grantee.EmailAddress,
				URI:          g.Grantee.URI,
			}
		}
		out.Grants = append(out.Grants, grant)
	}
	return out, nil
}

func (c *Client) addOperationGetObjectACLMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodeGetObjectACLOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}
