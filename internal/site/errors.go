package site

import (
	"errors"
	"fmt"
)

// ErrPageTemplateNotFound indicates a discovered page template vanished
// before it could be read. The policy here is consistent: it is fatal and
// aborts the whole build.
var ErrPageTemplateNotFound = errors.New("page template not found")

// PageTemplateError names the page whose template could not be read.
type PageTemplateError struct {
	Page string
	Err  error
}

func (e *PageTemplateError) Error() string {
	return fmt.Sprintf("page template for %s: %v", e.Page, e.Err)
}

func (e *PageTemplateError) Unwrap() error { return e.Err }

func (e *PageTemplateError) Is(target error) bool { return target == ErrPageTemplateNotFound }
