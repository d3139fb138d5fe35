package features

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Feature is one named column of a feature vector. Value is evaluated over the
// shared derived signals and always clamped to [Min, Max] by the builder.
type Feature struct {
	Name  string
	Min   float64
	Max   float64
	Value func(s *Signals) float64
}

// Config describes one engine variant: its column order and the similarity
// table used for interest matching (nil when the variant has no interest column).
// The column order is a contract with the trained classifier.
type Config struct {
	Name       string
	Features   []Feature
	Similarity *SimilarityTable
}

// Builder turns preference and item inputs into a fixed-order Vector
type Builder struct {
	cfg   Config
	names []string
}

// NewBuilder creates a builder for the given variant
func NewBuilder(cfg Config) *Builder {
	names := make([]string, len(cfg.Features))
	for i, f := range cfg.Features {
		names[i] = f.Name
	}
	return &Builder{cfg: cfg, names: names}
}

// Name returns the variant name
func (b *Builder) Name() string {
	return b.cfg.Name
}

// FeatureNames returns a copy of the column order
func (b *Builder) FeatureNames() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Build computes every column for one input. It never fails: absent optional
// fields have already been replaced by neutral defaults in Input.
func (b *Builder) Build(in Input) Vector {
	s := newSignals(in, b.cfg.Similarity)

	values := make([]float64, len(b.cfg.Features))
	for i, f := range b.cfg.Features {
		v := f.Value(s)
		if math.IsNaN(v) {
			v = f.Min
		}
		values[i] = round6(clamp(v, f.Min, f.Max))
	}

	return Vector{names: b.names, values: values}
}

// Vector is a feature mapping that remembers its column order
type Vector struct {
	names  []string
	values []float64
}

// NewVector builds a vector from parallel name and value slices
func NewVector(names []string, values []float64) Vector {
	n := make([]string, len(names))
	copy(n, names)
	v := make([]float64, len(names))
	copy(v, values)
	return Vector{names: n, values: v}
}

// Names returns the column order
func (v Vector) Names() []string {
	return v.names
}

// Len returns the number of columns
func (v Vector) Len() int {
	return len(v.names)
}

// Get returns the value of a column, or 0 for an unknown name
func (v Vector) Get(name string) float64 {
	for i, n := range v.names {
		if n == name {
			return v.values[i]
		}
	}
	return 0
}

// Has reports whether the column exists
func (v Vector) Has(name string) bool {
	for _, n := range v.names {
		if n == name {
			return true
		}
	}
	return false
}

// Row returns the values in the requested order, 0 for missing columns
func (v Vector) Row(order []string) []float64 {
	row := make([]float64, len(order))
	for i, name := range order {
		row[i] = v.Get(name)
	}
	return row
}

// Map returns the columns as a plain map
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.names))
	for i, n := range v.names {
		m[n] = v.values[i]
	}
	return m
}

// MarshalJSON writes the columns as an object in column order
func (v Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range v.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(v.values[i], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsHidden reports whether a column is a raw passthrough that must never be
// shown to users
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// HiddenPrefix marks classifier-only passthrough columns
const HiddenPrefix = "_"

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
