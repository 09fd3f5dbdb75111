package datagrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind tags the value carried by a Cell.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// Cell is a tagged grid value: text, number or empty (null in the source data).
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Text builds a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Number builds a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Number: f} }

// Empty builds an empty cell.
func Empty() Cell { return Cell{} }

// Cells converts loosely typed values into a Row. Unsupported types are
// rendered through fmt.
func Cells(values ...any) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = CellOf(v)
	}
	return row
}

// CellOf converts a Go value into a Cell.
func CellOf(v any) Cell {
	switch val := v.(type) {
	case nil:
		return Empty()
	case Cell:
		return val
	case string:
		return Text(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return Number(f)
		}
		return Text(val.String())
	default:
		return Text(fmt.Sprint(val))
	}
}

// IsNumber reports whether the cell carries a number.
func (c Cell) IsNumber() bool { return c.Kind == KindNumber }

// String returns the display form used by filtering, search and export.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return formatNumber(c.Number)
	default:
		return ""
	}
}

// Float coerces the cell to a number the way a loose numeric conversion does:
// empty and blank text become 0, unparsable text becomes NaN.
func (c Cell) Float() float64 {
	switch c.Kind {
	case KindNumber:
		return c.Number
	case KindText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return 0
	}
}

// HasFraction reports whether the cell is numeric with a non-zero fractional part.
func (c Cell) HasFraction() bool {
	if c.Kind != KindNumber || math.IsInf(c.Number, 0) || math.IsNaN(c.Number) {
		return false
	}
	return c.Number != math.Trunc(c.Number)
}

// MarshalJSON encodes the cell as a JSON string, number or null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindText:
		return json.Marshal(c.Text)
	case KindNumber:
		if math.IsInf(c.Number, 0) || math.IsNaN(c.Number) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes strings, numbers and null. Booleans are kept as text.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Empty()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("datagrid: decode cell: %w", err)
		}
		*c = Text(s)
	case 't', 'f':
		*c = Text(string(data))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("datagrid: decode cell %s: %w", data, err)
		}
		*c = Number(f)
	}
	return nil
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
