package testing

import (
	"testing"
)

func TestXMLEqual(t *testing.T) {
	cases := map[string]struct {
		Expect, Actual string
		Equal          bool
	}{
		"identical": {
			Expect: `<A><B>1</B></A>`,
			Actual: `<A><B>1</B></A>`,
			Equal:  true,
		},
		"sibling order": {
			Expect: `<A><B>1</B><C>2</C></A>`,
			Actual: `<A><C>2</C><B>1</B></A>`,
			Equal:  true,
		},
		"whitespace": {
			Expect: `<A><B>1</B></A>`,
			Actual: "<A>\n  <B> 1 </B>\n</A>",
			Equal:  true,
		},
		"attribute order": {
			Expect: `<A x="1" y="2"></A>`,
			Actual: `<A y="2" x="1"></A>`,
			Equal:  true,
		},
		"different value": {
			Expect: `<A><B>1</B></A>`,
			Actual: `<A><B>2</B></A>`,
		},
		"missing element": {
			Expect: `<A><B>1</B><C/></A>`,
			Actual: `<A><B>1</B></A>`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := XMLEqual([]byte(c.Expect), []byte(c.Actual))
			if c.Equal && err != nil {
				t.Errorf("expect equal, got %v", err)
			}
			if !c.Equal && err == nil {
				t.Errorf("expect not equal")
			}
		})
	}
}

func TestXMLEqual_Malformed(t *testing.T) {
	if err := XMLEqual([]byte(`<A>`), []byte(`<A></A>`)); err == nil {
		t.Errorf("expect error for malformed document")
	}
}

func TestURLQueryEqual(t *testing.T) {
	if err := URLQueryEqual("a=1&b=2", "b=2&a=1"); err != nil {
		t.Errorf("expect equal, got %v", err)
	}
	if err := URLQueryEqual("a=1", "a=2"); err == nil {
		t.Errorf("expect not equal")
	}
	if err := URLQueryEqual("a=%zz", "a=1"); err == nil {
		t.Errorf("expect parse error")
	}
}
