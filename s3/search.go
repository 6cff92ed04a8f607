package s3

import (
	"fmt"

	"github.com/jmespath/go-jmespath"

	objkittime "github.com/objkit/objkit-go/time"
)

// SearchObjects evaluates a JMESPath expression against a listing and
// returns the result. The listing is exposed with the member names of
// ListObjectsOutput; numbers are float64 and LastModified is an ISO 8601
// string, for example:
//
//	Contents[?Size > `1024`].Key
//	CommonPrefixes[].Prefix
func SearchObjects(listing *ListObjectsOutput, expression string) (interface{}, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing is required for search")
	}

	query, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid search expression %q, %w", expression, err)
	}

	result, err := query.Search(listingDocument(listing))
	if err != nil {
		return nil, fmt.Errorf("failed to search listing, %w", err)
	}
	return result, nil
}

// listingDocument converts listing into the generic form JMESPath
// functions and comparisons operate on.
func listingDocument(listing *ListObjectsOutput) map[string]interface{} {
	contents := make([]interface{}, 0, len(listing.Contents))
	for _, o := range listing.Contents {
		entry := map[string]interface{}{
			"Key":          o.Key,
			"ETag":         o.ETag,
			"Size":         float64(o.Size),
			"StorageClass": o.StorageClass,
			"LastModified": nil,
			"Owner":        nil,
		}
		if o.LastModified != nil {
			entry["LastModified"] = objkittime.FormatDateTime(*o.LastModified)
		}
		if o.Owner != nil {
			entry["Owner"] = map[string]interface{}{
				"ID":          o.Owner.ID,
				"DisplayName": o.Owner.DisplayName,
			}
		}
		contents = append(contents, entry)
	}

	prefixes := make([]interface{}, 0, len(listing.CommonPrefixes))
	for _, p := range listing.CommonPrefixes {
		prefixes = append(prefixes, map[string]interface{}{"Prefix": p.Prefix})
	}

	return map[string]interface{}{
		"Name":           listing.Name,
		"Prefix":         listing.Prefix,
		"Delimiter":      listing.Delimiter,
		"Marker":         listing.Marker,
		"NextMarker":     listing.NextMarker,
		"MaxKeys":        float64(listing.MaxKeys),
		"IsTruncated":    listing.IsTruncated,
		"Contents":       contents,
		"CommonPrefixes": prefixes,
	}
}
