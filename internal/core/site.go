package core

import (
	"reflect"
	"strconv"
)

// Site is the materialized identity of one mockable function or method.
// The injector declares exactly one package-level Site per target, so a
// Site's address is stable for the life of the process.
type Site struct {
	name      string
	constant  bool
	exclusive bool
}

// SiteOption configures a Site at declaration.
type SiteOption func(*Site)

// Key identifies a mock slot: a site plus, for generic targets, the
// concrete instantiation.
type Key struct {
	site *Site
	inst reflect.Type
}

// Const marks a site whose function is evaluated before any mock can be
// registered. Registrations against it are accepted and never consulted.
func Const() SiteOption {
	return func(s *Site) {
		s.constant = true
	}
}

// ExclusiveResult marks a site whose result hands out exclusive access
// (a pointer the caller may mutate through). Checked registrations refuse to
// hand out the same reference twice.
func ExclusiveResult() SiteOption {
	return func(s *Site) {
		s.exclusive = true
	}
}

// NewSite declares a mockable site.
func NewSite(name string, opts ...SiteOption) *Site {
	site := &Site{name: name}

	for _, opt := range opts {
		opt(site)
	}

	return site
}

// Const reports whether the site was declared with Const.
func (s *Site) Const() bool {
	return s.constant
}

// ExclusiveResult reports whether the site was declared with ExclusiveResult.
func (s *Site) ExclusiveResult() bool {
	return s.exclusive
}

// Name returns the diagnostic name given at declaration.
func (s *Site) Name() string {
	return s.name
}

// Site returns the site half of the key.
func (k Key) Site() *Site {
	return k.site
}

// String renders the key for diagnostics, e.g. "pkg.F[uint8]".
func (k Key) String() string {
	if k.inst == nil {
		return k.site.name
	}

	name := k.site.name + "["

	for i := range k.inst.NumIn() {
		if i > 0 {
			name += ","
		}

		name += k.inst.In(i).String()
	}

	return name + "]"
}

// newKey derives the key for site at the given type arguments. The type
// arguments are folded into a synthetic func type so that the key stays
// comparable and distinct per instantiation.
func newKey(site *Site, typeArgs []reflect.Type) Key {
	if site == nil {
		panic("mockable: nil site")
	}

	if len(typeArgs) == 0 {
		return Key{site: site}
	}

	for i, arg := range typeArgs {
		if arg == nil {
			panic("mockable: nil type argument " + strconv.Itoa(i) + " for " + site.name)
		}
	}

	return Key{site: site, inst: reflect.FuncOf(typeArgs, nil, false)}
}
