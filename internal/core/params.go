package core

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/vmihailenco/msgpack"
)

// Params is the bundle of algorithm tunables handed to the step engine.
type Params map[string]float64

// Float returns the value for key or def when unset.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok && !math.IsNaN(v) {
		return v
	}
	return def
}

// Int returns the value for key truncated to an int, or def when unset.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key]; ok && !math.IsNaN(v) {
		return int(v)
	}
	return def
}

// Prob returns the value for key clamped to [0, 1], or def when unset.
func (p Params) Prob(key string, def float64) float64 {
	v := p.Float(key, def)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clone returns an independent copy of the bundle.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge parses flag-style overrides into p. Keys not already present are
// ignored so typos do not silently introduce new tunables.
func (p Params) Merge(cfg map[string]string) {
	for k, raw := range cfg {
		if _, ok := p[k]; !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			p[k] = parsed
		}
	}
}

type paramBundle struct {
	Values map[string]float64 `json:"values"`
}

// EncodeParams serializes a parameter bundle with msgpack.
func EncodeParams(p Params) ([]byte, error) {
	var out bytes.Buffer
	enc := msgpack.NewEncoder(&out)
	enc.UseJSONTag(true)
	if err := enc.Encode(paramBundle{Values: p}); err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	return out.Bytes(), nil
}

// DecodeParams restores a bundle produced by EncodeParams. An empty input
// decodes to an empty bundle.
func DecodeParams(b []byte) (Params, error) {
	if len(b) == 0 {
		return Params{}, nil
	}
	var bundle paramBundle
	dec := msgpack.NewDecoder(bytes.NewBuffer(b))
	dec.UseJSONTag(true)
	if err := dec.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	if bundle.Values == nil {
		return Params{}, nil
	}
	return Params(bundle.Values), nil
}

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by an algorithm.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables exposed by an algorithm.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by algorithms that expose their tunables
// for display.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// FloatParameterSetter is implemented by algorithms whose tunables can be
// changed at runtime. It reports whether the key was accepted.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// Set updates an existing key. Unknown keys and NaN are rejected.
func (p Params) Set(key string, value float64) bool {
	if _, ok := p[key]; !ok || math.IsNaN(value) {
		return false
	}
	p[key] = value
	return true
}

// SnapshotOf builds a single-group snapshot from a bundle. Keys listed in
// ints are rendered as integers.
func SnapshotOf(name string, p Params, ints ...string) ParameterSnapshot {
	isInt := make(map[string]bool, len(ints))
	for _, k := range ints {
		isInt[k] = true
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	group := ParameterGroup{Name: name}
	for _, k := range keys {
		if isInt[k] {
			group.Params = append(group.Params, Parameter{
				Key:   k,
				Label: k,
				Type:  ParamTypeInt,
				Value: strconv.Itoa(int(p[k])),
			})
			continue
		}
		group.Params = append(group.Params, Parameter{
			Key:   k,
			Label: k,
			Type:  ParamTypeFloat,
			Value: strconv.FormatFloat(p[k], 'f', -1, 64),
		})
	}
	return ParameterSnapshot{Groups: []ParameterGroup{group}}
}
