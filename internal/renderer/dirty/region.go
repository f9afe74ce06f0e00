// Package dirty provides dirty region extraction for incremental rendering.
// Dirty cells are collected into row spans, and vertically adjacent spans
// covering the same columns are coalesced into rectangles.
package dirty

// Region is a rectangular area of the grid that needs redrawing.
// Rows are inclusive on both ends, columns are half-open.
type Region struct {
	// StartRow is the first row of the region (inclusive).
	StartRow int

	// EndRow is the last row of the region (inclusive).
	EndRow int

	// StartCol is the first column of the region (inclusive).
	StartCol int

	// EndCol is the last column of the region (exclusive).
	EndCol int
}

// NewSpan creates a single-row region.
func NewSpan(row, startCol, endCol int) Region {
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return Region{
		StartRow: row,
		EndRow:   row,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// IsEmpty returns true if the region covers no area.
func (r Region) IsEmpty() bool {
	return r.StartRow > r.EndRow || r.StartCol >= r.EndCol
}

// RowCount returns the number of rows covered by the region.
func (r Region) RowCount() int {
	if r.StartRow > r.EndRow {
		return 0
	}
	return r.EndRow - r.StartRow + 1
}

// Area returns the number of cells covered.
func (r Region) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.RowCount() * (r.EndCol - r.StartCol)
}

// Contains returns true if the region contains the given cell.
func (r Region) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow &&
		col >= r.StartCol && col < r.EndCol
}

// Adjacent returns true if two regions can be merged without covering any
// cell that neither covers.
func (r Region) Adjacent(other Region) bool {
	// Vertically adjacent with identical columns.
	if r.EndRow+1 == other.StartRow || other.EndRow+1 == r.StartRow {
		return r.StartCol == other.StartCol && r.EndCol == other.EndCol
	}

	// Same single row, touching columns.
	if r.StartRow == other.StartRow && r.EndRow == other.EndRow {
		return r.EndCol == other.StartCol || other.EndCol == r.StartCol
	}

	return false
}

// Merge combines two adjacent regions. Returns false if they are not
// adjacent.
func (r Region) Merge(other Region) (Region, bool) {
	if !r.Adjacent(other) {
		return Region{}, false
	}
	return Region{
		StartRow: min(r.StartRow, other.StartRow),
		EndRow:   max(r.EndRow, other.EndRow),
		StartCol: min(r.StartCol, other.StartCol),
		EndCol:   max(r.EndCol, other.EndCol),
	}, true
}

// Collector builds regions from dirty cells visited in row-major order.
type Collector struct {
	spans []Region
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{spans: make([]Region, 0, 16)}
}

// Add records a dirty cell. Cells must arrive in row-major order; a cell
// directly right of the previous one extends the current span.
func (c *Collector) Add(row, col int) {
	if n := len(c.spans); n > 0 {
		last := &c.spans[n-1]
		if last.StartRow == row && last.EndCol == col {
			last.EndCol++
			return
		}
	}
	c.spans = append(c.spans, NewSpan(row, col, col+1))
}

// Spans returns the raw row spans.
func (c *Collector) Spans() []Region {
	out := make([]Region, len(c.spans))
	copy(out, c.spans)
	return out
}

// Regions returns the spans with vertically adjacent, column-identical spans
// coalesced.
func (c *Collector) Regions() []Region {
	out := make([]Region, 0, len(c.spans))
	for _, span := range c.spans {
		merged := false
		for i := len(out) - 1; i >= 0; i-- {
			// Only regions ending on the previous row can absorb this span.
			if out[i].EndRow+1 != span.StartRow {
				continue
			}
			if m, ok := out[i].Merge(span); ok {
				out[i] = m
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, span)
		}
	}
	return out
}

// Reset empties the collector.
func (c *Collector) Reset() {
	c.spans = c.spans[:0]
}
