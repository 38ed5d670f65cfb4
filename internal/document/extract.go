package document

import (
	"bytes"
	"fmt"
)

// Extract parses a rendered document and returns the section element called
// name. Together with Render it satisfies the round-trip law: the extracted
// section equals the section that was rendered.
func Extract(doc []byte, name string) (*Node, error) {
	if _, ok := defaultRenderers()[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	parsed, err := Parse(decode(bytes.NewReader(doc)))
	if err != nil {
		return nil, err
	}
	at, err := parsed.section(name)
	if err != nil {
		return nil, err
	}
	return parsed.at(at), nil
}
