package pptx

import "errors"

var (
	// ErrNotPackage is returned when the input is not a zip archive.
	ErrNotPackage = errors.New("pptx: not an OOXML package")

	// ErrNotPresentation is returned when the archive lacks the parts every
	// presentation has.
	ErrNotPresentation = errors.New("pptx: not a presentation")

	// ErrMalformedPart is returned when a structural part cannot be parsed.
	ErrMalformedPart = errors.New("pptx: malformed part")

	// ErrSlideNotFound is returned when a slide is not in the slide list.
	ErrSlideNotFound = errors.New("pptx: slide not found")
)
