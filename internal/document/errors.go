package document

import "errors"

var (
	ErrUnknownSection    = errors.New("unknown section")
	ErrSectionNotFound   = errors.New("section not found in skeleton")
	ErrDuplicateSection  = errors.New("duplicate section")
	ErrMalformedSkeleton = errors.New("malformed skeleton")
	ErrEncodingViolation = errors.New("encoding violation")
)
