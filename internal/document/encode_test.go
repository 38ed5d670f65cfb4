package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func withBOM(s string) []byte {
	return append(append([]byte{}, bom...), s...)
}

func TestCRLF(t *testing.T) {
	out, _, err := transform.String(crlf{}, "a\nb\r\nc\rd\n")
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\nc\r\nd\r\n", out)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		doc     []byte
		wantErr bool
	}{
		{name: "valid", doc: withBOM("<?xml version=\"1.0\" encoding=\"utf-8\"?>\r\n<a x=\"1 &gt; 0\">\r\n  <b>1 &lt; 2</b>\r\n  <!-- a > b -->\r\n</a>\r\n")},
		{name: "internal DTD subset", doc: withBOM("<!DOCTYPE a [\r\n  <!ENTITY x \"1 > 0\">\r\n  <!-- ] > -->\r\n]>\r\n<a>1</a>\r\n")},
		{name: "missing BOM", doc: []byte("<a />\r\n"), wantErr: true},
		{name: "bare LF", doc: withBOM("<a>\n</a>\r\n"), wantErr: true},
		{name: "bare CR", doc: withBOM("<a>\r</a>\r\n"), wantErr: true},
		{name: "raw greater-than", doc: withBOM("<a>x > 1</a>\r\n"), wantErr: true},
		{name: "raw less-than in attribute", doc: withBOM("<a x=\"<\" />\r\n"), wantErr: true},
		{name: "not well-formed", doc: withBOM("<a><b></a>\r\n"), wantErr: true},
		{name: "invalid UTF-8", doc: withBOM("<a>\xff</a>\r\n"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.doc)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrEncodingViolation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNode_String(t *testing.T) {
	n := Element("Rung",
		Leaf("Name", "Fill & drain"),
		Leaf("Comment", ""),
		Element("Lines", Leaf("Line", "LD [ %MW0 > 3 ]")),
	)
	want := "<Rung>\n" +
		"  <Name>Fill &amp; drain</Name>\n" +
		"  <Comment />\n" +
		"  <Lines>\n" +
		"    <Line>LD [ %MW0 &gt; 3 ]</Line>\n" +
		"  </Lines>\n" +
		"</Rung>\n"
	assert.Equal(t, want, n.String())

	mixed := Element("Note", &Node{Kind: TextNode, Text: "see "}, Leaf("Ref", "R1"), &Node{Kind: TextNode, Text: " below"})
	assert.Equal(t, "<Note>see <Ref>R1</Ref> below</Note>\n", mixed.String())

	clone := n.Clone()
	clone.Child("Name").Children[0].Text = "changed"
	assert.Equal(t, "Fill & drain", n.Child("Name").Content())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.smbp")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.smbp")
	require.Error(t, WriteFileAtomic(path, []byte("x"), 0o644))

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
