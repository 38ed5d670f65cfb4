package document

import (
	"strconv"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/il"
	"github.com/specialistvlad/ladsynth/internal/ladder"
	"github.com/specialistvlad/ladsynth/internal/program"
)

// Section names. Each is also the name of the skeleton element it replaces.
const (
	SectionRungs        = "Rungs"
	SectionMemoryBits   = "MemoryBits"
	SectionMemoryWords  = "MemoryWords"
	SectionMemoryFloats = "MemoryFloats"
	SectionTimers       = "Timers"
	SectionExtensions   = "Extensions"
)

// DefaultSections lists every section with a built-in renderer.
var DefaultSections = []string{
	SectionRungs,
	SectionMemoryBits,
	SectionMemoryWords,
	SectionMemoryFloats,
	SectionTimers,
	SectionExtensions,
}

// Renderer produces the children of one section element.
type Renderer func(p *program.Program) ([]*Node, error)

func defaultRenderers() map[string]Renderer {
	return map[string]Renderer{
		SectionRungs:        renderRungs,
		SectionMemoryBits:   memoryRenderer(address.ZoneBit, "MemoryBit"),
		SectionMemoryWords:  memoryRenderer(address.ZoneWord, "MemoryWord"),
		SectionMemoryFloats: memoryRenderer(address.ZoneFloat, "MemoryFloat"),
		SectionTimers:       renderTimers,
		SectionExtensions:   renderExtensions,
	}
}

func itoa(i int) string { return strconv.Itoa(i) }

func boolText(b bool) string { return strconv.FormatBool(b) }

func symbolOf(reg *address.Registry, addr address.Address) (string, string) {
	if sym, ok := reg.SymbolAt(addr); ok {
		return sym.Name, sym.Comment
	}
	return "", ""
}

func renderRungs(p *program.Program) ([]*Node, error) {
	var out []*Node
	for _, r := range p.Rungs() {
		elements := Element("LadderElements")
		for _, e := range r.Graph.Elements() {
			elements.Append(ladderEntity(p.Registry, e))
		}
		lines := Element("InstructionLines")
		for _, line := range il.Lines(r.Instructions) {
			lines.Append(Element("InstructionLineEntity", Leaf("InstructionLine", line), Leaf("Comment", "")))
		}
		out = append(out, Element("RungEntity",
			elements,
			lines,
			Leaf("Name", r.Name),
			Leaf("MainComment", r.Comment),
			Leaf("Label", r.Label),
			Leaf("IsLadderSelected", "true"),
			Leaf("Guid", r.ID.String()),
		))
	}
	return out, nil
}

var elementTypes = map[ladder.Kind]string{
	ladder.KindCoil:       "Coil",
	ladder.KindComparison: "CompareBlock",
	ladder.KindOperation:  "OperateBlock",
	ladder.KindTimer:      "TimerFunctionBlock",
	ladder.KindLine:       "Line",
}

func ladderEntity(reg *address.Registry, e ladder.Placed) *Node {
	kind := elementTypes[e.Kind]
	if e.Kind == ladder.KindContact {
		kind = "NormalContact"
		if e.Negated {
			kind = "NegatedContact"
		}
	}

	n := Element("LadderEntity", Leaf("ElementType", kind))
	switch e.Kind {
	case ladder.KindContact, ladder.KindCoil, ladder.KindTimer:
		name, comment := symbolOf(reg, e.Address)
		n.Append(Leaf("Descriptor", e.Address.String()), Leaf("Comment", comment), Leaf("Symbol", name))
	case ladder.KindComparison:
		n.Append(Leaf("ComparisonExpression", e.Expression))
	case ladder.KindOperation:
		n.Append(Leaf("OperationExpression", e.Target.String()+" := "+e.Expression))
	}
	return n.Append(
		Leaf("Row", itoa(e.Row)),
		Leaf("Column", itoa(e.Column)),
		Leaf("ChosenConnection", e.Connections.String()),
	)
}

func memoryRenderer(zone address.Zone, entry string) Renderer {
	return func(p *program.Program) ([]*Node, error) {
		var out []*Node
		for _, addr := range p.Registry.Addresses(zone) {
			name, comment := symbolOf(p.Registry, addr)
			n := Element(entry,
				Leaf("Address", addr.String()),
				Leaf("Index", itoa(addr.Index)),
				Leaf("Symbol", name),
				Leaf("Comment", comment),
			)
			if zone != address.ZoneBit {
				n.Append(Leaf("Retentive", boolText(addr.Retentive)))
			}
			out = append(out, n)
		}
		return out, nil
	}
}

func renderTimers(p *program.Program) ([]*Node, error) {
	var out []*Node
	for _, t := range p.Timers() {
		out = append(out, Element("TimerTM",
			Leaf("Address", t.Address.String()),
			Leaf("Index", itoa(t.Address.Index)),
			Leaf("Symbol", t.Name),
			Leaf("Comment", t.Comment),
			Leaf("Preset", itoa(t.Preset)),
			Leaf("Base", string(t.Base)),
			Leaf("TimerType", string(t.Mode)),
		))
	}
	return out, nil
}

func renderExtensions(p *program.Program) ([]*Node, error) {
	var out []*Node
	for _, ext := range p.Extensions() {
		inputs := Element("AnalogInputs")
		for _, ch := range ext.Channels {
			inputs.Append(Element("AnalogIO",
				Leaf("Address", ch.Address.String()),
				Leaf("Index", itoa(ch.Index)),
				Leaf("Symbol", ch.Symbol),
				Leaf("Comment", ch.Comment),
				Leaf("Type", string(ch.Sensor)),
				Leaf("Minimum", itoa(ch.Range.Min)),
				Leaf("Maximum", itoa(ch.Range.Max)),
				Leaf("Sampling", string(ch.Sampling)),
			))
		}
		out = append(out, Element("ModuleExtensionObject",
			Leaf("Index", itoa(ext.Index)),
			Leaf("Slot", itoa(ext.Slot())),
			Leaf("Reference", ext.Reference),
			inputs,
		))
	}
	return out, nil
}
