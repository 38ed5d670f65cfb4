package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

//go:embed reference.smbp
var reference []byte

// Skeleton is a parsed base document. It is never mutated after loading and
// may be shared by concurrent renders.
type Skeleton struct {
	doc *Document
}

// ParseSkeleton reads a skeleton in UTF-8 or, when it carries a byte-order
// mark, UTF-16.
func ParseSkeleton(r io.Reader) (*Skeleton, error) {
	doc, err := Parse(decode(r))
	if err != nil {
		return nil, err
	}
	return &Skeleton{doc: doc}, nil
}

// LoadSkeleton reads the skeleton at path.
func LoadSkeleton(path string) (*Skeleton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skeleton: %w", err)
	}
	defer f.Close()

	s, err := ParseSkeleton(f)
	if err != nil {
		return nil, fmt.Errorf("skeleton %s: %w", path, err)
	}
	return s, nil
}

// ReferenceSkeleton returns the built-in skeleton.
func ReferenceSkeleton() *Skeleton {
	s, err := ParseSkeleton(bytes.NewReader(reference))
	if err != nil {
		panic(fmt.Sprintf("document: embedded reference skeleton: %v", err))
	}
	return s
}

// ReferenceSource returns a copy of the built-in skeleton file.
func ReferenceSource() []byte {
	return bytes.Clone(reference)
}

// Has reports whether the skeleton contains exactly one element called section.
func (s *Skeleton) Has(section string) bool {
	return len(s.doc.locate(section)) == 1
}

func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
