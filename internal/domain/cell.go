package domain

import (
	"encoding/json"
)

// CellKind tags the value stored in a score cell.
type CellKind int

const (
	// CellAbsent marks a missing or malformed cell. Contributes nothing.
	CellAbsent CellKind = iota
	// CellScalar is a single number for the round.
	CellScalar
	// CellComposite is several simultaneous point categories for the round.
	// Composite cells are kept intact but currently contribute zero to lap
	// totals, matching the saved-game records produced so far.
	CellComposite
)

// Cell is one participant's score entry for one round. On the wire a cell
// is a number, an array of numbers, or null; anything else decodes as
// absent rather than failing the whole record.
type Cell struct {
	Kind   CellKind
	Value  float64
	Values []float64
}

// Scalar builds a scalar cell.
func Scalar(v float64) Cell {
	return Cell{Kind: CellScalar, Value: v}
}

// Composite builds a multi-category cell.
func Composite(vs ...float64) Cell {
	return Cell{Kind: CellComposite, Values: vs}
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	// Unmarshalling null into a float64 is a no-op without error, so it
	// has to be caught before the scalar attempt.
	if string(b) == "null" {
		*c = Cell{Kind: CellAbsent}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*c = Scalar(v)
		return nil
	}

	var vs []float64
	if err := json.Unmarshal(b, &vs); err == nil && vs != nil {
		*c = Composite(vs...)
		return nil
	}

	*c = Cell{Kind: CellAbsent}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellScalar:
		return json.Marshal(c.Value)
	case CellComposite:
		return json.Marshal(c.Values)
	default:
		return []byte("null"), nil
	}
}
