package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/strict-types/strict-encoding-sub000/strict"
)

var (
	ErrUnnamedType  = errors.New("schema: only named types can be registered")
	ErrTypeConflict = errors.New("schema: type already registered with a different shape")
)

// Type is a registered strict type.
type Type struct {
	Lib  string           `cbor:"lib" yaml:"lib"`
	Name string           `cbor:"name" yaml:"name"`
	ID   SemID            `cbor:"id" yaml:"id"`
	Tree *strict.TypeNode `cbor:"tree" yaml:"tree"`
}

func (t *Type) Key() string { return t.Lib + "." + t.Name }

// Registry maps type names and semantic ids to described types. It is
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Type
	byID   map[SemID]*Type
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Type{}, byID: map[SemID]*Type{}}
}

// Register describes dumb and stores the resulting type. Registering
// the same shape twice is a no-op; a different shape under a known
// name yields ErrTypeConflict.
func (r *Registry) Register(dumb strict.Encoder) (*Type, error) {
	tree, err := strict.Describe(dumb)
	if err != nil {
		return nil, fmt.Errorf("schema: describe %T: %w", dumb, err)
	}
	if tree.TypeKey() == "" {
		return nil, fmt.Errorf("%w: %T describes as %s", ErrUnnamedType, dumb, tree)
	}
	id, err := ComputeSemID(tree)
	if err != nil {
		return nil, err
	}
	t := &Type{Lib: tree.Lib, Name: tree.Name, ID: id, Tree: tree}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byName[t.Key()]; ok {
		if prev.ID != id {
			log.Error().Str("type", t.Key()).Str("known", prev.ID.String()).Str("new", id.String()).Msg("schema: conflicting registration")
			return nil, fmt.Errorf("%w: %s", ErrTypeConflict, t.Key())
		}
		return prev, nil
	}
	r.byName[t.Key()] = t
	r.byID[id] = t
	log.Debug().Str("type", t.Key()).Str("semid", id.String()).Msg("schema: registered")
	return t, nil
}

func (r *Registry) MustRegister(dumb strict.Encoder) *Type {
	t, err := r.Register(dumb)
	if err != nil {
		panic(err)
	}
	return t
}

func (r *Registry) Lookup(lib, name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[lib+"."+name]
	return t, ok
}

// LookupKey accepts the "Lib.Name" form.
func (r *Registry) LookupKey(key string) (*Type, bool) {
	lib, name, ok := strings.Cut(key, ".")
	if !ok {
		return nil, false
	}
	return r.Lookup(lib, name)
}

func (r *Registry) LookupID(id SemID) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	return t, ok
}

// All returns the registered types ordered by library and name.
func (r *Registry) All() []*Type {
	r.mu.RLock()
	out := make([]*Type, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Type) int { return strings.Compare(a.Key(), b.Key()) })
	return out
}

// Document snapshots the registry for export.
func (r *Registry) Document() Document { return Document{Types: r.All()} }

// NewStdRegistry returns a registry holding the named types defined by
// the strict package itself.
func NewStdRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(strict.Bool(false))
	r.MustRegister(strict.Sizing{})
	r.MustRegister(strict.Variant{}.StrictDumb())
	return r
}

// Default is the process wide registry used by the package functions.
var Default = NewStdRegistry()

func Register(dumb strict.Encoder) (*Type, error) { return Default.Register(dumb) }
func MustRegister(dumb strict.Encoder) *Type      { return Default.MustRegister(dumb) }
func Lookup(lib, name string) (*Type, bool)       { return Default.Lookup(lib, name) }
func All() []*Type                                { return Default.All() }
