package typepool

import (
	"github.com/apigen/apigen/internal/arena"
	"github.com/apigen/apigen/internal/intern"
)

// Pool owns every Type produced while analyzing a single IDL file
// (spec.md §3.2, §4.2). Its lifetime is exactly one compile, matching the
// arena it allocates from.
//
// A Pool tracks two independent things, mirroring the two linked lists
// apigen_type_pool keeps in the original type-pool.c:
//   - names: the top-level declarations a document actually names, keyed
//     by an interned identifier (includes both unique types and alias
//     types). Every declaration name is looked up repeatedly — once per
//     reference site plus once at its own declaration — so the pool
//     interns each source identifier once via internal/intern and keys
//     the map on the resulting ID, turning every subsequent lookup's
//     string comparison into an integer one.
//   - cache: every structurally-interned, non-unique Type produced so
//     far, scanned linearly on each Intern call. The original does the
//     same linear scan; composite structural equality doesn't reduce to
//     a trivial hash without a good deal of extra bookkeeping; a pool
//     holds at most a few hundred Types per compile, so the list stays
//     short in practice.
type Pool struct {
	arena     arena.Arena[Type]
	interner  intern.Table
	names     map[intern.ID]*Type
	nameOrder []string
	cache     []*Type
}

// NewPool returns an empty Pool, ready to use.
func NewPool() *Pool {
	return &Pool{names: make(map[intern.ID]*Type)}
}

// alloc copies t onto the pool's arena and returns a stable pointer to the
// arena-owned copy.
func (p *Pool) alloc(t Type) *Type {
	ptr := p.arena.New(t)
	return ptr.In(&p.arena)
}

// Lookup resolves name against the primitive builtins first, then against
// types this pool has registered under that name. It does not attempt
// structural interning: Lookup is for resolving a name appearing in source,
// not for deduplicating a freshly built composite type (spec.md §4.2).
func (p *Pool) Lookup(name string) (*Type, bool) {
	if t, ok := Builtin(name); ok {
		return t, true
	}
	if t, ok := p.names[p.interner.Intern(name)]; ok {
		return t, true
	}
	return nil, false
}

// Register publishes t under name, allocating it on the pool's arena and
// returning the arena-owned *Type. It reports false without registering
// anything if name collides with a builtin spelling or an already
// registered name (spec.md §4.3.1, duplicate_symbol diagnostic is raised
// by the caller using that result).
func (p *Pool) Register(t Type, name string) (*Type, bool) {
	if _, ok := Builtin(name); ok {
		return nil, false
	}
	id := p.interner.Intern(name)
	if _, ok := p.names[id]; ok {
		return nil, false
	}
	t.Name = name
	owned := p.alloc(t)
	p.names[id] = owned
	p.nameOrder = append(p.nameOrder, name)
	return owned, true
}

// RegisterAnonymous allocates a unique type declared inline at some other
// type's use site rather than at the top level, under a synthesized name
// (spec.md §4.3.1: `"<prefix>_<kind>"`). It is tagged Anonymous so a
// renderer can tell the name was synthesized rather than user-chosen. The
// synthesized name is not entered into the pool's lookup-by-name table —
// no source identifier can reference it — so it cannot collide with a
// later top-level declaration.
func (p *Pool) RegisterAnonymous(t Type, name string) *Type {
	t.Name = name
	t.Anonymous = true
	return p.alloc(t)
}

// Intern returns the canonical *Type for t's shape: an existing entry in
// the pool's structural cache if one is already equal to t, or a freshly
// arena-allocated copy of t registered into the cache otherwise. Unique
// kinds (enum/struct/union/opaque) must never be passed to Intern — their
// identity is their declaration site, never their shape — and Register or
// RegisterAnonymous should be used for them instead.
func (p *Pool) Intern(t Type) *Type {
	if t.Kind.Unique() {
		panic("typepool: Intern called with a unique kind " + t.Kind.String())
	}
	for _, existing := range p.cache {
		if Equal(existing, &t) {
			return existing
		}
	}
	owned := p.alloc(t)
	p.cache = append(p.cache, owned)
	return owned
}

// Names returns every name this pool has registered, in registration
// order.
func (p *Pool) Names() []string {
	names := make([]string, len(p.nameOrder))
	copy(names, p.nameOrder)
	return names
}
