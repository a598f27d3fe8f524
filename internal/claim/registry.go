// Package claim tracks which owner currently holds each gesture identity.
package claim

import (
	"log"

	"github.com/frudas24/vgamepad/internal/input"
)

// Registry maps gesture identities to their single current owner.
//
// It is not safe for concurrent use; callers serialize access on their event
// delivery path.
type Registry[O comparable] struct {
	owners map[input.Identity]O
	logger *log.Logger
	debug  bool
}

// New returns an empty registry reporting anomalies to logger.
func New[O comparable](logger *log.Logger) *Registry[O] {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry[O]{
		owners: make(map[input.Identity]O),
		logger: logger,
	}
}

// SetDebug toggles claim/release traces.
func (r *Registry[O]) SetDebug(debug bool) {
	r.debug = debug
}

// Claim assigns id to owner. An existing claim is overwritten and returned
// with conflict=true.
func (r *Registry[O]) Claim(id input.Identity, owner O) (previous O, conflict bool) {
	previous, conflict = r.owners[id]
	if conflict {
		r.logger.Printf("claim: %s already claimed by %v, reassigning to %v", id, previous, owner)
	} else if r.debug {
		r.logger.Printf("claim: %v claiming %s", owner, id)
	}
	r.owners[id] = owner
	return previous, conflict
}

// Release removes the claim on id and returns its owner.
func (r *Registry[O]) Release(id input.Identity) (O, bool) {
	owner, ok := r.owners[id]
	if !ok {
		r.logger.Printf("claim: release of unclaimed %s ignored", id)
		return owner, false
	}
	delete(r.owners, id)
	if r.debug {
		r.logger.Printf("claim: releasing %s", id)
	}
	return owner, true
}

// Lookup returns the owner of id without changing the registry.
func (r *Registry[O]) Lookup(id input.Identity) (O, bool) {
	owner, ok := r.owners[id]
	return owner, ok
}

// Count returns how many identities owner currently holds.
func (r *Registry[O]) Count(owner O) int {
	n := 0
	for _, o := range r.owners {
		if o == owner {
			n++
		}
	}
	return n
}

// ReleaseOwner drops every claim held by owner and returns the freed identities.
func (r *Registry[O]) ReleaseOwner(owner O) []input.Identity {
	var freed []input.Identity
	for id, o := range r.owners {
		if o == owner {
			delete(r.owners, id)
			freed = append(freed, id)
		}
	}
	if len(freed) > 0 && r.debug {
		r.logger.Printf("claim: force-released %d claim(s) of %v", len(freed), owner)
	}
	return freed
}

// Len returns the number of live claims.
func (r *Registry[O]) Len() int {
	return len(r.owners)
}
