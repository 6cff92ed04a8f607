package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Node is an element of a sorted XML tree.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string
	Children []*Node
}

type xmlAttrSlice []xml.Attr

func (x xmlAttrSlice) Len() int {
	return len(x)
}

func (x xmlAttrSlice) Less(i, j int) bool {
	if c := strings.Compare(x[i].Name.Space, x[j].Name.Space); c != 0 {
		return c < 0
	}
	if c := strings.Compare(x[i].Name.Local, x[j].Name.Local); c != 0 {
		return c < 0
	}
	return x[i].Value < x[j].Value
}

func (x xmlAttrSlice) Swap(i, j int) {
	x[i], x[j] = x[j], x[i]
}

// XMLToStruct reads the next element from d and returns it as a sorted tree.
// Text content is trimmed of surrounding whitespace.
func XMLToStruct(d *xml.Decoder, start *xml.StartElement) (*Node, error) {
	if start == nil {
		for {
			tok, err := d.Token()
			if err != nil {
				return nil, err
			}
			if se, ok := tok.(xml.StartElement); ok {
				start = &se
				break
			}
		}
	}

	node := &Node{Name: start.Name, Attr: append([]xml.Attr(nil), start.Attr...)}
	sort.Sort(xmlAttrSlice(node.Attr))

	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := XMLToStruct(d, &t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			node.Text = strings.TrimSpace(text.String())
			sort.SliceStable(node.Children, func(i, j int) bool {
				return nodeKey(node.Children[i]) < nodeKey(node.Children[j])
			})
			return node, nil
		}
	}
}

func nodeKey(n *Node) string {
	var buf bytes.Buffer
	e := xml.NewEncoder(&buf)
	if err := StructToXML(e, n); err != nil {
		return n.Name.Space + ":" + n.Name.Local
	}
	return buf.String()
}

// StructToXML writes the tree rooted at n to e.
func StructToXML(e *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: n.Name, Attr: n.Attr}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if len(n.Text) != 0 {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := StructToXML(e, child); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(start.End()); err != nil {
		return err
	}
	return e.Flush()
}

// SortXML sorts the reader's XML elements
func SortXML(r io.Reader) (string, error) {
	root, err := XMLToStruct(xml.NewDecoder(r), nil)
	if err != nil {
		return "", fmt.Errorf("failed to read xml, %w", err)
	}

	var buf bytes.Buffer
	if err := StructToXML(xml.NewEncoder(&buf), root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AssertXML asserts two xml bodies by sorting the XML and comparing the
// strings. In case of mismatched XML, the error will contain the diff.
func AssertXML(actual io.Reader, expected io.Reader) (bool, error) {
	actualString, err := SortXML(actual)
	if err != nil {
		return false, err
	}

	expectedString, err := SortXML(expected)
	if err != nil {
		return false, err
	}

	if diff := cmp.Diff(expectedString, actualString); len(diff) != 0 {
		return false, fmt.Errorf("found diff while comparing the xml: %s", diff)
	}

	return true, nil
}
