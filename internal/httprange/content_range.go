// Package httprange parses the Content-Range headers that drive chunked
// resumable uploads.
package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ContentRange is one chunk of a resumable upload, parsed from a header of
// the form "bytes start-end/size".
type ContentRange struct {
	Start int64 // First byte of the chunk within the source file.
	End   int64 // Last byte of the chunk, inclusive.
	Size  int64 // Total size of the source file.
}

// Length of the chunk in bytes.
func (cr *ContentRange) Length() int64 { return cr.End - cr.Start + 1 }

// IsFinal reports whether the chunk carries the last byte of the file.
func (cr *ContentRange) IsFinal() bool { return cr.End+1 >= cr.Size }

// ParseContentRange parses a Content-Range header in the single form used by
// resumable uploads: "bytes start-end/size". Wildcard forms are rejected,
// the total size must be known up front.
func ParseContentRange(s string) (*ContentRange, error) {
	const unit = "bytes "
	if !strings.HasPrefix(s, unit) {
		return nil, errors.New("invalid unit of Content-Range header")
	}
	rng, size, ok := strings.Cut(s[len(unit):], "/")
	if !ok {
		return nil, errors.New("missing size of Content-Range header")
	}
	total, err := strconv.ParseInt(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return nil, errors.New("cannot parse size of Content-Range header")
	}
	first, last, ok := strings.Cut(rng, "-")
	if !ok {
		return nil, errors.New("cannot parse Content-Range header, expected format \"start-end\"")
	}
	start, err := strconv.ParseInt(strings.TrimSpace(first), 10, 64)
	if err != nil {
		return nil, errors.New("cannot parse start of Content-Range header")
	}
	end, err := strconv.ParseInt(strings.TrimSpace(last), 10, 64)
	if err != nil {
		return nil, errors.New("cannot parse end of Content-Range header")
	}
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid byte range %d-%d", start, end)
	}
	if end >= total {
		return nil, fmt.Errorf("byte range %d-%d exceeds size %d", start, end, total)
	}
	return &ContentRange{Start: start, End: end, Size: total}, nil
}
