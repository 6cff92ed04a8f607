package middleware

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/objkit/objkit-go/middleware/id"
)

type mockIder string

func (m mockIder) ID() string { return string(m) }

func noError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

// finalizeSlots builds the finalize ordering a signed operation uses.
func finalizeSlots(t *testing.T) *orderedIDs {
	t.Helper()
	o := newOrderedIDs()
	noError(t, o.Add(mockIder(id.ContentMD5), After))
	noError(t, o.Add(mockIder(id.RequestSigner), After))
	noError(t, o.Add(mockIder(id.RequestResponseLogger), After))
	return o
}

func TestOrderedIDs(t *testing.T) {
	cases := map[string]struct {
		Apply     func(*orderedIDs) error
		ExpectErr bool
		Expect    []string
	}{
		"add before": {
			Apply: func(o *orderedIDs) error {
				return o.Add(mockIder(id.UserAgent), Before)
			},
			Expect: []string{id.UserAgent, id.ContentMD5, id.RequestSigner, id.RequestResponseLogger},
		},
		"insert after signer": {
			Apply: func(o *orderedIDs) error {
				return o.Insert(mockIder("Presign"), id.RequestSigner, After)
			},
			Expect: []string{id.ContentMD5, id.RequestSigner, "Presign", id.RequestResponseLogger},
		},
		"insert before signer": {
			Apply: func(o *orderedIDs) error {
				return o.Insert(mockIder(id.ComputeContentLength), id.RequestSigner, Before)
			},
			Expect: []string{id.ContentMD5, id.ComputeContentLength, id.RequestSigner, id.RequestResponseLogger},
		},
		"swap signer": {
			Apply: func(o *orderedIDs) error {
				removed, err := o.Swap(id.RequestSigner, mockIder("PresignRequest"))
				if err == nil && removed.ID() != id.RequestSigner {
					return fmt.Errorf("expect %v removed, got %v", id.RequestSigner, removed.ID())
				}
				return err
			},
			Expect: []string{id.ContentMD5, "PresignRequest", id.RequestResponseLogger},
		},
		"remove logger": {
			Apply: func(o *orderedIDs) error {
				_, err := o.Remove(id.RequestResponseLogger)
				return err
			},
			Expect: []string{id.ContentMD5, id.RequestSigner},
		},
		"clear": {
			Apply: func(o *orderedIDs) error {
				o.Clear()
				return o.Add(mockIder(id.RequestSigner), After)
			},
			Expect: []string{id.RequestSigner},
		},
		"add empty id": {
			Apply:     func(o *orderedIDs) error { return o.Add(mockIder(""), After) },
			ExpectErr: true,
		},
		"add duplicate": {
			Apply:     func(o *orderedIDs) error { return o.Add(mockIder(id.RequestSigner), After) },
			ExpectErr: true,
		},
		"add unknown position": {
			Apply:     func(o *orderedIDs) error { return o.Add(mockIder("unique"), 123) },
			ExpectErr: true,
		},
		"insert relative to missing": {
			Apply:     func(o *orderedIDs) error { return o.Insert(mockIder("unique"), "not-found", After) },
			ExpectErr: true,
		},
		"insert relative to empty": {
			Apply:     func(o *orderedIDs) error { return o.Insert(mockIder("unique"), "", After) },
			ExpectErr: true,
		},
		"insert duplicate": {
			Apply:     func(o *orderedIDs) error { return o.Insert(mockIder(id.ContentMD5), id.RequestSigner, After) },
			ExpectErr: true,
		},
		"swap to empty id": {
			Apply: func(o *orderedIDs) error {
				_, err := o.Swap(id.RequestSigner, mockIder(""))
				return err
			},
			ExpectErr: true,
		},
		"swap to existing id": {
			Apply: func(o *orderedIDs) error {
				_, err := o.Swap(id.RequestSigner, mockIder(id.ContentMD5))
				return err
			},
			ExpectErr: true,
		},
		"swap missing": {
			Apply: func(o *orderedIDs) error {
				_, err := o.Swap("not-found", mockIder("unique"))
				return err
			},
			ExpectErr: true,
		},
		"remove missing": {
			Apply: func(o *orderedIDs) error {
				_, err := o.Remove("not-found")
				return err
			},
			ExpectErr: true,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			o := finalizeSlots(t)
			before := o.List()

			err := c.Apply(o)
			if c.ExpectErr {
				if err == nil {
					t.Fatalf("expect error, got none")
				}
				if diff := cmp.Diff(before, o.List()); diff != "" {
					t.Errorf("expect order unchanged on error\n%s", diff)
				}
				return
			}
			noError(t, err)

			if diff := cmp.Diff(c.Expect, o.List()); diff != "" {
				t.Errorf("expect order match\n%s", diff)
			}
		})
	}
}

func TestOrderedIDsGet(t *testing.T) {
	o := finalizeSlots(t)

	if f, ok := o.Get("not-found"); ok || f != nil {
		t.Fatalf("expect id not to be found, but was")
	}

	f, ok := o.Get(id.RequestSigner)
	if !ok {
		t.Fatalf("expect id to be found, was not")
	}
	if e, a := id.RequestSigner, f.ID(); e != a {
		t.Errorf("expect %v id, got %v", e, a)
	}
}

func TestOrderedIDsGetOrder(t *testing.T) {
	o := finalizeSlots(t)
	noError(t, o.Add(mockIder(id.UserAgent), Before))

	var ids []string
	for _, v := range o.GetOrder() {
		ids = append(ids, v.(ider).ID())
	}

	expect := []string{id.UserAgent, id.ContentMD5, id.RequestSigner, id.RequestResponseLogger}
	if diff := cmp.Diff(expect, ids); diff != "" {
		t.Errorf("expect order match\n%s", diff)
	}
}
