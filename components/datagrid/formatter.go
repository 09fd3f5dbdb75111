package datagrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// DurationSentinel is rendered for non-positive or non-finite durations.
const DurationSentinel = "0 mins, 0 secs"

const (
	FormatterDuration   = "duration"
	FormatterPercentage = "percentage"
)

// FormatDuration renders decimal minutes as "<m> mins, <s> secs".
func FormatDuration(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return DurationSentinel
	}
	mins := math.Floor(minutes)
	secs := math.Round((minutes - mins) * 60)
	if secs >= 60 {
		mins++
		secs -= 60
	}
	return strconv.FormatFloat(mins, 'f', 0, 64) + " mins, " + strconv.FormatFloat(secs, 'f', 0, 64) + " secs"
}

// FormatPercentage renders v followed by a percent sign. The value is assumed
// to be rounded already.
func FormatPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return formatNumber(v) + "%"
}

// CellFormatter converts a raw cell into its display cell.
type CellFormatter func(Cell) Cell

var builtinFormatters = map[string]CellFormatter{
	FormatterDuration: func(c Cell) Cell {
		return Text(FormatDuration(c.Float()))
	},
	FormatterPercentage: func(c Cell) Cell {
		return Text(FormatPercentage(c.Float()))
	},
}

// defaultBindings maps the analytics report columns to their formatter.
var defaultBindings = map[string]string{
	"Average Engagement Time Per Session": FormatterDuration,
	"Engagement Rate":                     FormatterPercentage,
}

// Formatters binds columns (by id or label) to named formatters.
type Formatters struct {
	mu       sync.RWMutex
	named    map[string]CellFormatter
	bindings map[string]string
	version  uint64
}

// NewFormatters returns a registry with the built-in formatters and the default
// analytics bindings.
func NewFormatters() *Formatters {
	f := &Formatters{
		named:    make(map[string]CellFormatter, len(builtinFormatters)),
		bindings: make(map[string]string, len(defaultBindings)),
	}
	for name, fn := range builtinFormatters {
		f.named[name] = fn
	}
	for key, name := range defaultBindings {
		f.bindings[key] = name
	}
	return f
}

// Register adds or replaces a named formatter.
func (f *Formatters) Register(name string, fn CellFormatter) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("datagrid: formatter name is required")
	}
	if fn == nil {
		return fmt.Errorf("datagrid: formatter %s cannot be nil", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.named[name] = fn
	f.version++
	return nil
}

// Bind associates a column id or label with a registered formatter.
func (f *Formatters) Bind(column, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.named[name]; !ok {
		return fmt.Errorf("datagrid: unknown formatter %q for column %s", name, column)
	}
	f.bindings[column] = name
	f.version++
	return nil
}

// Version counts the changes made through Register and Bind.
func (f *Formatters) Version() uint64 {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// For returns the formatter bound to the column, checking the id before the label.
func (f *Formatters) For(col ColumnSpec) (CellFormatter, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	name, ok := f.bindings[col.ID]
	if !ok {
		name, ok = f.bindings[col.Label]
	}
	if !ok {
		return nil, false
	}
	fn, ok := f.named[name]
	return fn, ok
}

// Format applies the bound formatter, passing unbound cells through.
func (f *Formatters) Format(col ColumnSpec, c Cell) Cell {
	if fn, ok := f.For(col); ok {
		return fn(c)
	}
	return c
}
