/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package registry is the VM Registry of spec.md §3: a canonical-name-keyed
// map from loaded class name to a shared, reference-counted ClassFile. It
// plays the role of jacobin/classloader's method area (MethAreaInsert /
// MethAreaFetch), but where the teacher guards a single map with a
// sync.RWMutex and insert-if-absent of an already-parsed class, this
// registry also owns the miss path: a concurrent Resolve for the same name
// triggers exactly one load, and every caller waiting on that name receives
// the same shared ClassFile once it completes.
package registry

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jacobin-corevm/corevm/internal/classfile"
	"github.com/jacobin-corevm/corevm/internal/trace"
)

// Loader produces the raw class bytes for a canonical class name on a
// registry miss (spec.md §4.8: "on miss, it invokes C7 on a file identified
// by name"). How a name maps to bytes - filesystem, jar, network - is the
// caller's concern; the registry only needs the result.
type Loader func(canonicalName string) ([]byte, error)

// Registry is the VM Registry: keyed by canonical UTF-8 class name (dots
// converted to slashes per internal form), invariant that each name is
// loaded at most once (spec.md §3, "VM Registry").
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*classfile.ClassFile
	group   singleflight.Group
	load    Loader
	strict  bool
}

// New builds an empty registry. load is consulted on every miss; strict
// selects DecodeStrict over Decode for every class this registry loads.
func New(load Loader, strict bool) *Registry {
	return &Registry{
		classes: make(map[string]*classfile.ClassFile),
		load:    load,
		strict:  strict,
	}
}

// Normalize converts a dotted class name ("java.lang.Object") to the
// internal slash form ("java/lang/Object") the registry keys on.
func Normalize(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// Lookup returns the already-loaded class for name, or ok=false if it has
// never been resolved. It never triggers a load.
func (r *Registry) Lookup(name string) (*classfile.ClassFile, bool) {
	name = Normalize(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	cf, ok := r.classes[name]
	return cf, ok
}

// Resolve returns the shared ClassFile for name, loading and decoding it on
// first request. Concurrent Resolve calls for the same name share one load
// via the singleflight group, so Loader is invoked at most once per name
// even under contention (spec.md §5: "insert-if-absent semantics - lookups
// return a shared reference that outlives the registry lock").
func (r *Registry) Resolve(name string) (*classfile.ClassFile, error) {
	name = Normalize(name)

	if cf, ok := r.Lookup(name); ok {
		return cf, nil
	}

	v, err, _ := r.group.Do(name, func() (interface{}, error) {
		if cf, ok := r.Lookup(name); ok {
			return cf, nil
		}
		trace.Trace("registry: loading " + name)
		raw, err := r.load(name)
		if err != nil {
			return nil, err
		}
		var cf *classfile.ClassFile
		if r.strict {
			cf, err = classfile.DecodeStrict(raw)
		} else {
			cf, err = classfile.Decode(raw)
		}
		if err != nil {
			trace.Error("registry: decode failed for " + name + ": " + err.Error())
			return nil, err
		}
		r.insert(name, cf)
		return cf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*classfile.ClassFile), nil
}

// insert records cf under name if no entry already exists, preserving the
// registry's at-most-once-per-name invariant even if two singleflight
// groups somehow raced (they cannot under the current Do-keyed-by-name
// design, but insert stays defensive rather than asserting on it).
func (r *Registry) insert(name string, cf *classfile.ClassFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[name]; !exists {
		r.classes[name] = cf
	}
}

// Count returns the number of distinct classes currently loaded.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
