// Package system holds the per-frame update routines and the registry that
// dispatches them. Systems register themselves from init functions anywhere
// in the program; the host calls RunAll once per frame.
package system

import (
	"fmt"
	"sort"
	"sync"
)

// Descriptor names one update routine. Lower Order runs first; equal orders
// run in registration order.
type Descriptor struct {
	Name  string
	Order int
	Run   func(*Context)
}

// Registry is an ordered, append-only set of systems. The first RunAll seals
// it; registering afterwards panics.
type Registry struct {
	mu     sync.Mutex
	descs  []Descriptor
	names  map[string]bool
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// Default is the process-wide registry that init-time registrations go to.
var Default = NewRegistry()

// Register adds d to the default registry.
func Register(d Descriptor) {
	Default.Register(d)
}

// RunAll dispatches every system in the default registry.
func RunAll(ctx *Context) {
	Default.RunAll(ctx)
}

// Register panics on an empty name, a nil Run, a duplicate name, or after
// the registry was sealed.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Name == "" {
		panic("system: Register with empty name")
	}
	if d.Run == nil {
		panic(fmt.Sprintf("system: Register %q with nil Run", d.Name))
	}
	if r.sealed {
		panic(fmt.Sprintf("system: Register %q after dispatch started", d.Name))
	}
	if r.names[d.Name] {
		panic(fmt.Sprintf("system: Register called twice for %q", d.Name))
	}
	if r.names == nil {
		r.names = make(map[string]bool)
	}
	r.names[d.Name] = true
	r.descs = append(r.descs, d)
}

func (r *Registry) seal() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed {
		sort.SliceStable(r.descs, func(i, j int) bool {
			return r.descs[i].Order < r.descs[j].Order
		})
		r.sealed = true
	}
	return r.descs
}

// RunAll invokes every registered system exactly once, in order. Commands a
// system queued on ctx are applied before the next system runs. A panicking
// system is not recovered.
func (r *Registry) RunAll(ctx *Context) {
	for _, d := range r.seal() {
		d.Run(ctx)
		ctx.flush()
	}
}

// Descriptors returns the systems in dispatch order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, len(r.descs))
	copy(out, r.descs)
	if !r.sealed {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Order < out[j].Order
		})
	}
	return out
}
