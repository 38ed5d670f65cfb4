package document

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/program"
)

// Synthesizer renders programs into copies of one skeleton.
type Synthesizer struct {
	skeleton  *Skeleton
	renderers map[string]Renderer
}

// NewSynthesizer returns a synthesizer with the built-in section renderers.
func NewSynthesizer(skel *Skeleton) *Synthesizer {
	return &Synthesizer{skeleton: skel, renderers: defaultRenderers()}
}

// Register installs or replaces the renderer of section.
func (s *Synthesizer) Register(section string, r Renderer) {
	s.renderers[section] = r
}

// Render produces the validated document bytes for p.
func (s *Synthesizer) Render(ctx context.Context, p *program.Program) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	sections := p.Sections
	if len(sections) == 0 {
		sections = DefaultSections
	}

	seen := make(map[string]struct{}, len(sections))
	for _, name := range sections {
		if _, ok := s.renderers[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s requested twice", ErrDuplicateSection, name)
		}
		seen[name] = struct{}{}
	}

	doc := s.skeleton.doc.clone()
	for _, name := range sections {
		at, err := doc.section(name)
		if err != nil {
			return nil, err
		}
		children, err := s.renderers[name](p)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		old := doc.at(at)
		doc.set(at, &Node{Kind: ElementNode, Name: old.Name, Attrs: old.Attrs, Children: children})
		logger.Debug("Section rendered.", "section", name, "entries", len(children))
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
