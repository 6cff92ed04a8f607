/*
Package xml holds the XML encoding used for request bodies and the decoding
of service error documents.

Encoding is done with Encoder and Value. A Value writes its start tag when it
is created and its end tag when closed; scalar writers (String, Long,
Boolean) close the value themselves. Nested elements and arrays must be
closed by the caller, ideally with defer.

	e := xml.NewEncoder()
	root := e.RootElement(xml.StartElement{Name: xml.Name{Local: "CreateBucketConfiguration"}})
	root.MemberElement(xml.StartElement{Name: xml.Name{Local: "LocationConstraint"}}).String("eu-west-1")
	root.Close()

Decoding of service error documents is done with DecodeErrorDocument.
*/
package xml
