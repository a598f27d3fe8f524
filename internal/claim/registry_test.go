package claim

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/frudas24/vgamepad/internal/input"
)

type owner struct{ name string }

func newTestRegistry() (*Registry[*owner], *bytes.Buffer) {
	var buf bytes.Buffer
	return New[*owner](log.New(&buf, "", 0)), &buf
}

// TestClaim_LookupRelease verifies the basic claim lifecycle.
func TestClaim_LookupRelease(t *testing.T) {
	r, _ := newTestRegistry()
	a := &owner{"a"}
	id := input.Identity{Modality: input.ModalityPointer, ID: 1}

	if _, conflict := r.Claim(id, a); conflict {
		t.Fatalf("expected no conflict on first claim")
	}
	if got, ok := r.Lookup(id); !ok || got != a {
		t.Fatalf("expected lookup to return a, got %v ok=%v", got, ok)
	}
	if got, ok := r.Release(id); !ok || got != a {
		t.Fatalf("expected release to return a, got %v ok=%v", got, ok)
	}
	if _, ok := r.Lookup(id); ok {
		t.Fatalf("expected identity to be unclaimed after release")
	}
}

// TestClaim_ConflictLastWriterWins verifies overwrites are reported and keep one owner.
func TestClaim_ConflictLastWriterWins(t *testing.T) {
	r, buf := newTestRegistry()
	a, b := &owner{"a"}, &owner{"b"}
	id := input.Identity{Modality: input.ModalityTouch, ID: 5}

	r.Claim(id, a)
	prev, conflict := r.Claim(id, b)
	if !conflict || prev != a {
		t.Fatalf("expected conflict with previous owner a, got %v conflict=%v", prev, conflict)
	}
	if got, _ := r.Lookup(id); got != b {
		t.Fatalf("expected b to own the identity, got %v", got)
	}
	if r.Len() != 1 || r.Count(a) != 0 || r.Count(b) != 1 {
		t.Fatalf("expected a single claim held by b, len=%d a=%d b=%d", r.Len(), r.Count(a), r.Count(b))
	}
	if !strings.Contains(buf.String(), "already claimed") {
		t.Fatalf("expected conflict to be logged, got %q", buf.String())
	}
}

// TestRelease_Unclaimed verifies a stray release is logged and changes nothing.
func TestRelease_Unclaimed(t *testing.T) {
	r, buf := newTestRegistry()
	a := &owner{"a"}
	held := input.Identity{Modality: input.ModalityPointer, ID: 1}
	r.Claim(held, a)

	if _, ok := r.Release(input.Identity{Modality: input.ModalityPointer, ID: 2}); ok {
		t.Fatalf("expected release of unclaimed identity to fail")
	}
	if r.Len() != 1 {
		t.Fatalf("expected existing claim to survive, len=%d", r.Len())
	}
	if !strings.Contains(buf.String(), "unclaimed p2") {
		t.Fatalf("expected anomaly to be logged, got %q", buf.String())
	}
}

// TestReleaseOwner_FreesOnlyThatOwner verifies force-release is scoped to one owner.
func TestReleaseOwner_FreesOnlyThatOwner(t *testing.T) {
	r, _ := newTestRegistry()
	a, b := &owner{"a"}, &owner{"b"}
	r.Claim(input.Identity{Modality: input.ModalityTouch, ID: 1}, a)
	r.Claim(input.Identity{Modality: input.ModalityTouch, ID: 2}, a)
	r.Claim(input.Identity{Modality: input.ModalityTouch, ID: 3}, b)

	freed := r.ReleaseOwner(a)
	if len(freed) != 2 {
		t.Fatalf("expected 2 freed identities, got %v", freed)
	}
	if r.Count(a) != 0 || r.Count(b) != 1 || r.Len() != 1 {
		t.Fatalf("unexpected registry state: a=%d b=%d len=%d", r.Count(a), r.Count(b), r.Len())
	}
}

// TestClaim_AtMostOneOwnerAfterSequence verifies the single-owner invariant over a mixed sequence.
func TestClaim_AtMostOneOwnerAfterSequence(t *testing.T) {
	r, _ := newTestRegistry()
	owners := []*owner{{"a"}, {"b"}, {"c"}}
	for i := 0; i < 30; i++ {
		id := input.Identity{Modality: input.ModalityPointer, ID: i % 4}
		if i%3 == 2 {
			r.Release(id)
			continue
		}
		r.Claim(id, owners[i%len(owners)])
	}
	total := 0
	for _, o := range owners {
		total += r.Count(o)
	}
	if total != r.Len() {
		t.Fatalf("expected each claim to have exactly one owner, owners=%d len=%d", total, r.Len())
	}
}
