package render

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateRender indicates the template evaluator rejected a template.
	ErrTemplateRender = errors.New("template render failed")

	// ErrMarkdownParse indicates the markdown converter rejected a document.
	ErrMarkdownParse = errors.New("markdown conversion failed")
)

// SourceError tags an evaluator or converter failure with the offending
// source path for diagnostics. It matches its sentinel under errors.Is.
type SourceError struct {
	sentinel error
	Path     string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.sentinel, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == e.sentinel }

func newTemplateError(path string, err error) *SourceError {
	return &SourceError{sentinel: ErrTemplateRender, Path: path, Err: err}
}

func newMarkdownError(path string, err error) *SourceError {
	return &SourceError{sentinel: ErrMarkdownParse, Path: path, Err: err}
}
