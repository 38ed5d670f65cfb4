package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"unicode/utf8"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Validate checks rendered bytes against the target encoding rules: a UTF-8
// byte-order mark, CRLF line endings only, no raw angle brackets in
// character data or attribute values, and well-formed XML.
func Validate(doc []byte) error {
	if !bytes.HasPrefix(doc, bom) {
		return fmt.Errorf("%w: missing byte-order mark", ErrEncodingViolation)
	}
	body := doc[len(bom):]
	if !utf8.Valid(body) {
		return fmt.Errorf("%w: invalid UTF-8", ErrEncodingViolation)
	}
	if err := checkLineEndings(body); err != nil {
		return err
	}
	if err := checkMarkup(body); err != nil {
		return err
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = true
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingViolation, err)
		}
	}
}

func checkLineEndings(body []byte) error {
	line := 1
	for i, c := range body {
		switch c {
		case '\n':
			if i == 0 || body[i-1] != '\r' {
				return fmt.Errorf("%w: bare LF on line %d", ErrEncodingViolation, line)
			}
			line++
		case '\r':
			if i+1 == len(body) || body[i+1] != '\n' {
				return fmt.Errorf("%w: bare CR on line %d", ErrEncodingViolation, line)
			}
		}
	}
	return nil
}

// checkMarkup scans outside comments, processing instructions and CDATA for
// '>' in character data and '<' inside quoted attribute values.
func checkMarkup(body []byte) error {
	line := 1
	inTag := false
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\n' {
			line++
		}
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '<' {
				return fmt.Errorf("%w: unescaped '<' in attribute value on line %d", ErrEncodingViolation, line)
			}
		case inTag:
			switch c {
			case '"', '\'':
				quote = c
			case '>':
				inTag = false
			}
		case c == '<':
			if end, ok := skipSpecial(body[i:]); ok {
				line += bytes.Count(body[i:i+end], []byte{'\n'})
				i += end - 1
				continue
			}
			inTag = true
		case c == '>':
			return fmt.Errorf("%w: unescaped '>' in character data on line %d", ErrEncodingViolation, line)
		}
	}
	return nil
}

// skipSpecial returns the length of a comment, processing instruction, CDATA
// section or markup declaration starting at b.
func skipSpecial(b []byte) (int, bool) {
	for _, pair := range [][2]string{{"<!--", "-->"}, {"<?", "?>"}, {"<![CDATA[", "]]>"}} {
		if bytes.HasPrefix(b, []byte(pair[0])) {
			end := bytes.Index(b[len(pair[0]):], []byte(pair[1]))
			if end < 0 {
				return len(b), true
			}
			return len(pair[0]) + end + len(pair[1]), true
		}
	}
	if bytes.HasPrefix(b, []byte("<!")) {
		return skipDeclaration(b), true
	}
	return 0, false
}

// skipDeclaration measures a <!DOCTYPE ...> style declaration. The '>' that
// ends it is the first one outside quotes and outside an internal [ ] subset;
// declarations and comments inside the subset are skipped whole.
func skipDeclaration(b []byte) int {
	depth := 0
	var quote byte
	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == '<' && depth > 0:
			if n, ok := skipSpecial(b[i:]); ok {
				i += n - 1
			}
		case c == '>' && depth == 0:
			return i + 1
		}
	}
	return len(b)
}
