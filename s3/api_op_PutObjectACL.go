package s3

import (
	"bytes"
	"context"
	"net/http"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	objkithttp "github.com/objkit/objkit-go/transport/http"
	objkitxml "github.com/objkit/objkit-go/xml"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// PutObjectACL replaces the access control list of an object, either with a
// canned ACL or with an explicit AccessControlPolicy.
func (c *Client) PutObjectACL(ctx context.Context, params *PutObjectACLInput, optFns ...func(*Options)) (*PutObjectACLOutput, error) {
	if params == nil {
		params = &PutObjectACLInput{}
	}

	result, metadata, err := c.invokeOperation(ctx, "PutObjectACL", params, optFns, c.addOperationPutObjectACLMiddlewares)
	if err != nil {
		return nil, err
	}

	out := result.(*PutObjectACLOutput)
	out.ResultMetadata = metadata
	return out, nil
}

// PutObjectACLInput is the input of PutObjectACL. Exactly one of ACL and
// AccessControlPolicy must be set.
type PutObjectACLInput struct {
	// The key of the object. This member is required.
	Key string

	VersionID string

	ACL                 ObjectCannedACL
	AccessControlPolicy *AccessControlPolicy
}

func (in *PutObjectACLInput) validate() error {
	invalidParams := objkit.InvalidParamsError{Context: "PutObjectACLInput"}
	validateKey(&invalidParams, in.Key)
	switch {
	case len(in.ACL) == 0 && in.AccessControlPolicy == nil:
		invalidParams.Add(objkit.NewErrParamRequired("ACL"))
	case len(in.ACL) != 0 && in.AccessControlPolicy != nil:
		invalidParams.Add(objkit.NewErrParamValue("AccessControlPolicy", "cannot be combined with ACL"))
	}
	if p := in.AccessControlPolicy; p != nil {
		for _, g := range p.Grants {
			if g.Grantee == nil {
				invalidParams.Add(objkit.NewErrParamRequired("AccessControlPolicy.Grants.Grantee"))
				break
			}
		}
	}
	return validationResult(&invalidParams)
}

func (in *PutObjectACLInput) requestDescriptor() (*RequestDescriptor, error) {
	desc := aclDescriptor(VerbPut, in.Key, in.VersionID)
	desc.Header = http.Header{}
	setHeaderIfNotEmpty(desc.Header, aclHeader, string(in.ACL))

	if in.AccessControlPolicy != nil {
		desc.Body = bytes.NewReader(encodeAccessControlPolicy(in.AccessControlPolicy))
		desc.ContentType = "application/xml"
	}
	return desc, nil
}

func encodeAccessControlPolicy(p *AccessControlPolicy) []byte {
	enc := objkitxml.NewEncoder()
	root := enc.RootElement(objkitxml.StartElement{
		Name: objkitxml.Name{Local: "AccessControlPolicy"},
		Attr: []objkitxml.Attr{objkitxml.NewNamespaceAttribute(xmlNamespace)},
	})

	if p.Owner != nil {
		encodeOwner(root.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: "Owner"}}), p.Owner)
	}

	acl := root.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: "AccessControlList"}})
	grants := acl.ArrayWithCustomName(objkitxml.StartElement{Name: objkitxml.Name{Local: "Grant"}})
	for _, g := range p.Grants {
		encodeGrant(grants.Member(), g)
	}
	grants.Close()

	root.Close()
	return enc.Bytes()
}

func encodeOwner(v objkitxml.Value, o *Owner) {
	if len(o.ID) != 0 {
		v.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: "ID"}}).String(o.ID)
	}
	if len(o.DisplayName) != 0 {
		v.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: "DisplayName"}}).String(o.DisplayName)
	}
	v.Close()
}

func encodeGrant(v objkitxml.Value, g Grant) {
	grantee := g.Grantee
	gv := v.MemberElement(objkitxml.StartElement{
		Name: objkitxml.Name{Local: "Grantee"},
		Attr: []objkitxml.Attr{
			{Name: objkitxml.Name{Space: "xmlns", Local: "xsi"}, Value: xsiNamespace},
			{Name: objkitxml.Name{Space: "xsi", Local: "type"}, Value: string(grantee.Type)},
		},
	})
	members := []struct{ name, value string }{
		{"ID", grantee.ID},
		{"DisplayName", grantee.DisplayName},
		{"EmailAddress", grantee.EmailAddress},
		{"URI", grantee.URI},
	}
	for _, m := range members {
		if len(m.value) != 0 {
			gv.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: m.name}}).String(m.value)
		}
	}
	gv.Close()

	v.MemberElement(objkitxml.StartElement{Name: objkitxml.Name{Local: "Permission"}}).String(string(g.Permission))
	v.Close()
}

// PutObjectACLOutput is the output of PutObjectACL.
type PutObjectACLOutput struct {
	// Metadata pertaining to the operation's result.
	ResultMetadata middleware.Metadata
}

func decodePutObjectACLOutput(*objkithttp.Response) (interface{}, error) {
	return &PutObjectACLOutput{}, nil
}

func (c *Client) addOperationPutObjectACLMiddlewares(stack *middleware.Stack, options Options) error {
	if err := addOperationDeserializer(stack, notFoundIsError, decodePutObjectACLOutput); err != nil {
		return err
	}
	if err := objkithttp.AddCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	return addClientMiddlewares(stack, options)
}
