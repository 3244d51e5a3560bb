package groups

import (
	"errors"
	"strings"
	"testing"
)

func allocation(t *testing.T) *Allocator {
	t.Helper()
	a := New(nil)
	if err := a.Initialize(2); err != nil {
		t.Fatal(err)
	}
	_ = a.Assign("lions", 0)
	_ = a.Assign("tigers", 0)
	_ = a.Assign("bears", 1)
	return a
}

var (
	lions  = TeamRef{ID: "lions", Name: "Lions"}
	tigers = TeamRef{ID: "tigers", Name: "Tigers"}
	bears  = TeamRef{ID: "bears", Name: "Bears"}
	wolves = TeamRef{ID: "wolves", Name: "Wolves"}
)

func TestCheckMatchupSameGroup(t *testing.T) {
	m, err := CheckMatchup(lions, tigers, allocation(t), true)
	if err != nil {
		t.Fatalf("same-group pairing rejected: %v", err)
	}
	if !m.GroupStructured || m.GroupIndex != 0 || m.GroupLabel != "A" {
		t.Errorf("unexpected verdict: %+v", m)
	}
}

func TestCheckMatchupSelf(t *testing.T) {
	if _, err := CheckMatchup(lions, lions, allocation(t), true); !errors.Is(err, ErrSelfMatch) {
		t.Errorf("expected ErrSelfMatch, got %v", err)
	}
	if _, err := CheckMatchup(lions, lions, nil, false); !errors.Is(err, ErrSelfMatch) {
		t.Errorf("expected ErrSelfMatch without groups, got %v", err)
	}
}

func TestCheckMatchupUnallocated(t *testing.T) {
	_, err := CheckMatchup(lions, wolves, allocation(t), true)
	if !errors.Is(err, ErrTeamUnallocated) {
		t.Fatalf("expected ErrTeamUnallocated, got %v", err)
	}
	var unallocated *UnallocatedTeamError
	if !errors.As(err, &unallocated) || unallocated.Team.ID != "wolves" {
		t.Errorf("error should name the unallocated team, got %v", err)
	}
}

func TestCheckMatchupCrossGroup(t *testing.T) {
	_, err := CheckMatchup(lions, bears, allocation(t), true)
	if !errors.Is(err, ErrDifferentGroups) {
		t.Fatalf("expected ErrDifferentGroups, got %v", err)
	}
	var cross *CrossGroupError
	if !errors.As(err, &cross) {
		t.Fatalf("expected a CrossGroupError, got %T", err)
	}
	if cross.Group1 != "A" || cross.Group2 != "B" {
		t.Errorf("unexpected groups in error: %+v", cross)
	}
	msg := err.Error()
	for _, part := range []string{"Lions", "Bears", "group A", "group B"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q does not mention %q", msg, part)
		}
	}
}

func TestCheckMatchupWithoutGroupStructure(t *testing.T) {
	m, err := CheckMatchup(lions, bears, allocation(t), false)
	if err != nil {
		t.Fatalf("any distinct pair may meet without group structure: %v", err)
	}
	if m.GroupStructured || m.GroupIndex != -1 {
		t.Errorf("unexpected verdict: %+v", m)
	}
	if _, err := CheckMatchup(lions, wolves, nil, false); err != nil {
		t.Errorf("unallocated teams may meet without group structure: %v", err)
	}
}

func TestCheckMatchupGroupStructuredWithoutAllocation(t *testing.T) {
	m, err := CheckMatchup(lions, tigers, nil, true)
	if !errors.Is(err, ErrTeamUnallocated) {
		t.Fatalf("expected ErrTeamUnallocated, got %v (verdict %+v)", err, m)
	}
	var unallocated *UnallocatedTeamError
	if !errors.As(err, &unallocated) || unallocated.Team.ID != lions.ID {
		t.Errorf("expected team1 to be reported, got %v", err)
	}
}
