package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/hardware"
	"github.com/specialistvlad/ladsynth/internal/ladder"
	"github.com/specialistvlad/ladsynth/internal/program"
)

func bind(t *testing.T, reg *address.Registry, zone address.Zone, name, comment string) address.Address {
	t.Helper()
	addr, err := reg.Allocate(zone)
	require.NoError(t, err)
	_, err = reg.Bind(addr, name, comment)
	require.NoError(t, err)
	return addr
}

func rung(t *testing.T, p *program.Program, name string, cond ladder.Element, out ladder.Element) {
	t.Helper()
	ctx := context.Background()
	b := ladder.BeginRung()
	require.NoError(t, b.Place(cond, 0, 0, ladder.Left|ladder.Right))
	require.NoError(t, b.FillSeries(1, 10, 0))
	require.NoError(t, b.Place(out, 0, 10, ladder.Left|ladder.Right))
	g, err := b.Finalize()
	require.NoError(t, err)
	r, err := program.Assemble(ctx, name, "", "", g)
	require.NoError(t, err)
	require.NoError(t, p.Append(ctx, r))
}

// tank builds a small program touching every section.
func tank(t *testing.T) *program.Program {
	t.Helper()
	reg := address.New()
	p := program.New("tank", reg)

	start := bind(t, reg, address.ZoneBit, "START", "Start push button")
	run := bind(t, reg, address.ZoneBit, "RUN", "Pump & valve running")
	alarm := bind(t, reg, address.ZoneBit, "LEVEL_LOW", "")
	level := bind(t, reg, address.ZoneWord, "LEVEL", "")
	scaled := bind(t, reg, address.ZoneFloat, "LEVEL_PCT", "")
	tm := bind(t, reg, address.ZoneTimer, "FILL_TIMEOUT", "")
	require.NoError(t, p.DeclareTimer(program.Timer{Name: "FILL_TIMEOUT", Address: tm, Preset: 120, Base: ladder.BaseOneSecond, Mode: ladder.ModeOnDelay}))

	ext, err := hardware.DeclareModule(reg, 0, "TM3AI2/G", 2)
	require.NoError(t, err)
	_, err = ext.ConfigureChannel(0, hardware.ChannelConfig{Symbol: "LEVEL_RAW", Sensor: hardware.SensorCurrent4To20, Range: hardware.Range{Min: 0, Max: 10000}})
	require.NoError(t, err)
	require.NoError(t, ext.LeaveUnused(1))
	module, err := ext.Finalize()
	require.NoError(t, err)
	require.NoError(t, p.AddExtension(module))

	rung(t, p, "Run", ladder.Contact(start, false), ladder.Coil(run))
	rung(t, p, "Low level", ladder.Comparison(level.String()+" < 5"), ladder.Coil(alarm))
	rung(t, p, "Scale", ladder.Contact(run, false), ladder.Operation(scaled, "INT_TO_REAL(%IW1.0) / 100.0"))
	return p
}

func render(t *testing.T, skel *Skeleton, p *program.Program) []byte {
	t.Helper()
	out, err := NewSynthesizer(skel).Render(context.Background(), p)
	require.NoError(t, err)
	return out
}

func TestRender_Encoding(t *testing.T) {
	out := render(t, ReferenceSkeleton(), tank(t))

	require.NoError(t, Validate(out))
	assert.True(t, bytes.HasPrefix(out, bom))
	assert.NotContains(t, strings.ReplaceAll(string(out), "\r\n", ""), "\n")

	text := string(out)
	assert.Contains(t, text, `<?xml version="1.0" encoding="utf-8"?>`+"\r\n")
	assert.Contains(t, text, "<ComparisonExpression>%MW100 &lt; 5</ComparisonExpression>")
	assert.Contains(t, text, "<Comment>Pump &amp; valve running</Comment>")
	assert.Contains(t, text, "<InstructionLine>LD [ %MW100 &lt; 5 ]</InstructionLine>")
	assert.Contains(t, text, "<ChosenConnection>Left, Right</ChosenConnection>")
}

func TestRender_PreservesSkeleton(t *testing.T) {
	out := render(t, ReferenceSkeleton(), tank(t))
	text := string(out)

	assert.Contains(t, text, "<Company>Process automation &amp; control</Company>")
	assert.Contains(t, text, "    <Counters />\r\n")
	assert.Contains(t, text, "<Reference>TM221CE24R</Reference>")
	assert.Contains(t, text, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
}

func TestRender_SkeletonIsNotMutated(t *testing.T) {
	skel := ReferenceSkeleton()
	first := render(t, skel, tank(t))

	empty := program.New("empty", address.New())
	out := render(t, skel, empty)
	rungs, err := Extract(out, SectionRungs)
	require.NoError(t, err)
	assert.Empty(t, rungs.Children)

	assert.Equal(t, first, render(t, skel, tank(t)))
}

func TestRender_RoundTrip(t *testing.T) {
	p := tank(t)
	out := render(t, ReferenceSkeleton(), p)

	for _, name := range DefaultSections {
		t.Run(name, func(t *testing.T) {
			children, err := defaultRenderers()[name](p)
			require.NoError(t, err)
			want := Element(name, children...)

			got, err := Extract(out, name)
			require.NoError(t, err)
			assert.Equal(t, want.String(), got.String())
		})
	}
}

func TestRender_RoundTripBlankComment(t *testing.T) {
	reg := address.New()
	p := program.New("blank", reg)
	bind(t, reg, address.ZoneBit, "A", "   ")
	out := render(t, ReferenceSkeleton(), p)

	want, err := defaultRenderers()[SectionMemoryBits](p)
	require.NoError(t, err)
	got, err := Extract(out, SectionMemoryBits)
	require.NoError(t, err)
	assert.Equal(t, Element(SectionMemoryBits, want...).String(), got.String())

	entries := got.ChildrenNamed("MemoryBit")
	require.Len(t, entries, 1)
	assert.Equal(t, "   ", entries[0].Child("Comment").Content())
	assert.Contains(t, string(out), "<Comment>   </Comment>\r\n")
}

func TestRender_MixedContentOutsideSections(t *testing.T) {
	mixed := "<Comment>Rev <b>2</b> of the <i>base</i> project</Comment>"
	src := strings.Replace(string(reference), "<Comment />", mixed, 1)
	skel, err := ParseSkeleton(strings.NewReader(src))
	require.NoError(t, err)

	out := render(t, skel, tank(t))
	require.NoError(t, Validate(out))
	assert.Contains(t, string(out), "    "+mixed+"\r\n")

	// A second pass through the parser leaves the element as it was.
	again, err := ParseSkeleton(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, string(out), string(render(t, again, tank(t))))
}

func TestRender_DoctypeSkeleton(t *testing.T) {
	doctype := "<!DOCTYPE ProjectDescriptor [\n  <!ENTITY vendor \"ACME\">\n  <!-- ] > -->\n]>\n"
	src := strings.Replace(string(reference), "?>\n", "?>\n"+doctype, 1)
	skel, err := ParseSkeleton(strings.NewReader(src))
	require.NoError(t, err)

	out := render(t, skel, tank(t))
	require.NoError(t, Validate(out))
	assert.Contains(t, string(out), "<!DOCTYPE ProjectDescriptor [")
}

func TestRender_MemorySections(t *testing.T) {
	out := render(t, ReferenceSkeleton(), tank(t))

	words, err := Extract(out, SectionMemoryWords)
	require.NoError(t, err)
	entries := words.ChildrenNamed("MemoryWord")
	require.Len(t, entries, 1)
	assert.Equal(t, "%MW100", entries[0].Child("Address").Content())
	assert.Equal(t, "LEVEL", entries[0].Child("Symbol").Content())
	assert.Equal(t, "false", entries[0].Child("Retentive").Content())

	timers, err := Extract(out, SectionTimers)
	require.NoError(t, err)
	tm := timers.Child("TimerTM")
	require.NotNil(t, tm)
	assert.Equal(t, "120", tm.Child("Preset").Content())
	assert.Equal(t, "OneSecond", tm.Child("Base").Content())

	exts, err := Extract(out, SectionExtensions)
	require.NoError(t, err)
	io := exts.Child("ModuleExtensionObject").Child("AnalogInputs").ChildrenNamed("AnalogIO")
	require.Len(t, io, 2)
	assert.Equal(t, "%IW1.0", io[0].Child("Address").Content())
	assert.Equal(t, "NotUsed", io[1].Child("Type").Content())
}

func TestRender_SectionNotFound(t *testing.T) {
	src := strings.Replace(string(reference), "<MemoryFloats />", "", 1)
	skel, err := ParseSkeleton(strings.NewReader(src))
	require.NoError(t, err)

	_, err = NewSynthesizer(skel).Render(context.Background(), tank(t))
	require.ErrorIs(t, err, ErrSectionNotFound)
	assert.Contains(t, err.Error(), "MemoryFloats")
}

func TestRender_DuplicateSection(t *testing.T) {
	src := strings.Replace(string(reference), "<Timers />", "<Timers /><Timers />", 1)
	skel, err := ParseSkeleton(strings.NewReader(src))
	require.NoError(t, err)

	_, err = NewSynthesizer(skel).Render(context.Background(), tank(t))
	require.ErrorIs(t, err, ErrDuplicateSection)
}

func TestRender_UnknownSection(t *testing.T) {
	p := tank(t)
	p.Sections = []string{SectionRungs, "Counters"}

	_, err := NewSynthesizer(ReferenceSkeleton()).Render(context.Background(), p)
	require.ErrorIs(t, err, ErrUnknownSection)
	assert.Contains(t, err.Error(), "Counters")
}

func TestRender_CustomRenderer(t *testing.T) {
	p := tank(t)
	p.Sections = []string{"Counters"}
	s := NewSynthesizer(ReferenceSkeleton())
	s.Register("Counters", func(*program.Program) ([]*Node, error) {
		return []*Node{Leaf("Note", "a > b")}, nil
	})

	out, err := s.Render(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<Note>a &gt; b</Note>")
	assert.Contains(t, string(out), "<Rungs />", "unrequested sections keep skeleton content")
}

func TestParseSkeleton_UTF16(t *testing.T) {
	utf16 := strings.Replace(string(reference), `encoding="utf-8"`, `encoding="utf-16"`, 1)
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.Bytes([]byte(utf16))
	require.NoError(t, err)

	skel, err := ParseSkeleton(bytes.NewReader(raw))
	require.NoError(t, err)
	out := render(t, skel, tank(t))
	assert.Contains(t, string(out), `encoding="utf-8"`)
	require.NoError(t, Validate(out))
}

func TestParseSkeleton_BOM(t *testing.T) {
	skel, err := ParseSkeleton(bytes.NewReader(append(append([]byte{}, bom...), reference...)))
	require.NoError(t, err)
	assert.True(t, skel.Has(SectionRungs))
}

func TestParseSkeleton_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "mismatched end tag", src: "<a><b></a></b>"},
		{name: "unclosed root", src: "<a><b /></a"},
		{name: "never closed", src: "<a><b>"},
		{name: "empty", src: "<?xml version=\"1.0\"?>"},
		{name: "two roots", src: "<a /><b />"},
		{name: "text outside root", src: "<a />trailing"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSkeleton(strings.NewReader(tc.src))
			require.ErrorIs(t, err, ErrMalformedSkeleton)
		})
	}
}

func TestLoadSkeleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.smbp")
	crlfSource := strings.ReplaceAll(string(reference), "\n", "\r\n")
	require.NoError(t, os.WriteFile(path, []byte(crlfSource), 0o644))

	skel, err := LoadSkeleton(path)
	require.NoError(t, err)
	assert.Equal(t, string(render(t, ReferenceSkeleton(), tank(t))), string(render(t, skel, tank(t))))

	_, err = LoadSkeleton(filepath.Join(t.TempDir(), "missing.smbp"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_Errors(t *testing.T) {
	out := render(t, ReferenceSkeleton(), tank(t))

	_, err := Extract(out, "Counters")
	require.ErrorIs(t, err, ErrUnknownSection)

	trimmed := bytes.Replace(out, []byte("<Timers>"), []byte("<Other>"), 1)
	trimmed = bytes.Replace(trimmed, []byte("</Timers>"), []byte("</Other>"), 1)
	_, err = Extract(trimmed, SectionTimers)
	require.ErrorIs(t, err, ErrSectionNotFound)
}
