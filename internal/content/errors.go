package content

import (
	"errors"
	"fmt"
)

// ErrMetadataParse indicates an explicit metadata file could not be parsed.
var ErrMetadataParse = errors.New("malformed content metadata")

// MetadataError names the content directory whose explicit metadata was
// rejected. It matches ErrMetadataParse under errors.Is.
type MetadataError struct {
	Dir string
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata for %s: %v", e.Dir, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

func (e *MetadataError) Is(target error) bool { return target == ErrMetadataParse }
