package status

import (
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot renders every metric as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = strconv.FormatBool(v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = strconv.FormatInt(v.Load(), 10) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = strconv.FormatFloat(v.Get(), 'f', 1, 64) })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// KeyValues flattens a snapshot into alternating key/value pairs in sorted key order,
// the shape structured loggers take
func (r *Registry) KeyValues() []any {
	var kv []any
	r.Bools.Range(func(k string, v *atomic.Bool) { kv = append(kv, k, v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { kv = append(kv, k, v.Load()) })
	r.Floats.Range(func(k string, v *AtomicFloat) { kv = append(kv, k, v.Get()) })
	r.Strings.Range(func(k string, v *AtomicString) { kv = append(kv, k, v.Load()) })
	return kv
}
