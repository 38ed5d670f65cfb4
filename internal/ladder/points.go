package ladder

// points is a union-find over the column boundaries of a rung. Point (r,c) is
// the left edge of cell (r,c); point (r,width) is the right edge of the
// terminal column.
type points struct {
	width  int
	parent []int
}

func newPoints(rows, width int) *points {
	p := &points{width: width, parent: make([]int, rows*(width+1))}
	for i := range p.parent {
		p.parent[i] = i
	}
	return p
}

func (p *points) id(row, col int) int {
	return row*(p.width+1) + col
}

func (p *points) find(x int) int {
	for p.parent[x] != x {
		p.parent[x] = p.parent[p.parent[x]]
		x = p.parent[x]
	}
	return x
}

func (p *points) union(a, b int) {
	ra, rb := p.find(a), p.find(b)
	if ra == rb {
		return
	}
	// Keep the smaller id as root so the rail stays at point 0.
	if rb < ra {
		ra, rb = rb, ra
	}
	p.parent[rb] = ra
}

// in returns the merged left point of a cell.
func (p *points) in(c Cell) int {
	return p.find(p.id(c.Row, c.Column))
}

// out returns the merged right point of a cell.
func (p *points) out(c Cell) int {
	return p.find(p.id(c.Row, c.Column+1))
}

// edge is a conducting element between two merged points.
type edge struct {
	from, to int
	expr     *Expr
}

// reachFrom returns every point reachable from start by following edges forward.
func reachFrom(edges []edge, start int) map[int]bool {
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range edges {
			if e.from == cur && !seen[e.to] {
				seen[e.to] = true
				stack = append(stack, e.to)
			}
		}
	}
	return seen
}

// reachTo returns every point from which end can be reached.
func reachTo(edges []edge, end int) map[int]bool {
	seen := map[int]bool{end: true}
	stack := []int{end}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range edges {
			if e.to == cur && !seen[e.from] {
				seen[e.from] = true
				stack = append(stack, e.from)
			}
		}
	}
	return seen
}
