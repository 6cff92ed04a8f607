package s3

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSearchObjects(t *testing.T) {
	modified := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	listing := &ListObjectsOutput{
		Name:        "mybucket",
		IsTruncated: true,
		Contents: []Object{
			{Key: "a.txt", Size: 10, LastModified: &modified, Owner: &Owner{ID: "o1"}},
			{Key: "big.bin", Size: 4096},
			{Key: "b.txt", Size: 20, StorageClass: "GLACIER"},
		},
		CommonPrefixes: []CommonPrefix{{Prefix: "logs/"}},
	}

	cases := map[string]struct {
		Expression string
		Expect     interface{}
	}{
		"filter by size": {
			Expression: "Contents[?Size > `1024`].Key",
			Expect:     []interface{}{"big.bin"},
		},
		"string equality": {
			Expression: "Contents[?Key == 'a.txt'].Size",
			Expect:     []interface{}{float64(10)},
		},
		"storage class": {
			Expression: "Contents[?StorageClass == 'GLACIER'] | [0].Key",
			Expect:     "b.txt",
		},
		"last modified": {
			Expression: "Contents[0].LastModified",
			Expect:     "2013-01-01T00:00:00.000Z",
		},
		"owner": {
			Expression: "Contents[?Owner != null].Owner.ID",
			Expect:     []interface{}{"o1"},
		},
		"common prefixes": {
			Expression: "CommonPrefixes[].Prefix",
			Expect:     []interface{}{"logs/"},
		},
		"function": {
			Expression: "sum(Contents[].Size)",
			Expect:     float64(4126),
		},
		"scalar": {
			Expression: "IsTruncated",
			Expect:     true,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			actual, err := SearchObjects(listing, c.Expression)
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if diff := cmp.Diff(c.Expect, actual); diff != "" {
				t.Errorf("expect result match\n%s", diff)
			}
		})
	}
}

func TestSearchObjects_Errors(t *testing.T) {
	if _, err := SearchObjects(nil, "Name"); err == nil {
		t.Errorf("expect error for nil listing")
	}
	if _, err := SearchObjects(&ListObjectsOutput{}, "Contents[?"); err == nil {
		t.Errorf("expect error for invalid expression")
	}
}
