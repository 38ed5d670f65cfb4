package ladder

import (
	"fmt"
	"sort"
)

// DefaultWidth is the number of grid columns of a rung, terminal column included.
const DefaultWidth = 11

// DefaultMaxRows bounds the number of grid rows of a rung.
const DefaultMaxRows = 64

// RungOption customizes a RungBuilder.
type RungOption func(*RungBuilder)

// WithWidth sets the number of grid columns.
func WithWidth(width int) RungOption {
	return func(b *RungBuilder) {
		b.width = width
	}
}

// WithMaxRows sets the number of grid rows a rung may use.
func WithMaxRows(rows int) RungOption {
	return func(b *RungBuilder) {
		b.maxRows = rows
	}
}

// RungBuilder collects placed elements for one rung. It is single use: after
// Finalize succeeds the builder should be discarded.
type RungBuilder struct {
	width   int
	maxRows int
	cells   map[Cell]Placed
}

// BeginRung starts an empty rung.
func BeginRung(opts ...RungOption) *RungBuilder {
	b := &RungBuilder{
		width:   DefaultWidth,
		maxRows: DefaultMaxRows,
		cells:   make(map[Cell]Placed),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Width returns the number of grid columns.
func (b *RungBuilder) Width() int {
	return b.width
}

// TerminalColumn is the column coils and operations must occupy.
func (b *RungBuilder) TerminalColumn() int {
	return b.width - 1
}

// Place puts e at (row, column) with the given connections.
func (b *RungBuilder) Place(e Element, row, column int, conn Connection) error {
	cell := Cell{Row: row, Column: column}
	if row < 0 || row >= b.maxRows || column < 0 || column >= b.width {
		return fmt.Errorf("%w: %s %s, grid is %d columns by %d rows", ErrOutOfGrid, e.Kind, cell, b.width, b.maxRows)
	}
	if err := e.validate(); err != nil {
		return fmt.Errorf("%s: %w", cell, err)
	}
	if existing, ok := b.cells[cell]; ok {
		return fmt.Errorf("%w: %s already holds %s", ErrCellOccupied, cell, existing.describe())
	}
	if (e.Kind == KindCoil || e.Kind == KindOperation) && column != b.TerminalColumn() {
		p := Placed{Element: e, Cell: cell}
		return fmt.Errorf("%w: %s, terminal column is %d", ErrTerminalColumn, p, b.TerminalColumn())
	}
	b.cells[cell] = Placed{Element: e, Cell: cell, Connections: conn}
	return nil
}

// FillSeries places Line{Left, Right} in every column of [from, to) on row.
func (b *RungBuilder) FillSeries(from, to, row int) error {
	for c := from; c < to; c++ {
		if err := b.Place(Line(), row, c, Left|Right); err != nil {
			return err
		}
	}
	return nil
}

// Finalize closes the topology and returns the immutable graph.
func (b *RungBuilder) Finalize() (*Graph, error) {
	if b.width < 2 {
		return nil, fmt.Errorf("%w: rung width %d leaves no room for a condition", ErrOutOfGrid, b.width)
	}
	if len(b.cells) == 0 {
		return nil, fmt.Errorf("%w: empty rung", ErrNoEnergizablePath)
	}

	g := &Graph{
		width: b.width,
		index: make(map[Cell]int, len(b.cells)),
	}
	for _, p := range b.cells {
		g.elements = append(g.elements, p)
	}
	sort.Slice(g.elements, func(i, j int) bool {
		return before(g.elements[i].Cell, g.elements[j].Cell)
	})
	for i, p := range g.elements {
		g.index[p.Cell] = i
		if p.Row+1 > g.rows {
			g.rows = p.Row + 1
		}
	}

	if err := g.close(); err != nil {
		return nil, err
	}
	return g, nil
}
