package phases

import (
	"errors"
	"testing"

	"github.com/Dosada05/championship-manager/models"
)

func row(id string, played, points int) models.Standing {
	return models.Standing{TeamID: id, Stats: models.TeamStats{MatchesPlayed: played, Points: points}}
}

func twoGroupSchema(t *testing.T, advancement int, next models.Phase) *Schema {
	t.Helper()
	s, err := NewSchema(Normalize([]models.Phase{
		{Kind: models.PhaseKindGroup, NumGroups: 2, Advancement: intPtr(advancement)},
		next,
	}))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestQuota(t *testing.T) {
	cases := []struct{ adv, groups, want int }{
		{4, 2, 2}, {5, 2, 3}, {8, 4, 2}, {3, 4, 1}, {4, 0, 0},
	}
	for _, c := range cases {
		if got := Quota(c.adv, c.groups); got != c.want {
			t.Errorf("Quota(%d, %d) = %d, want %d", c.adv, c.groups, got, c.want)
		}
	}
}

func TestPlanTwoGroupsIntoOneGroup(t *testing.T) {
	s := twoGroupSchema(t, 4, models.Phase{Kind: models.PhaseKindGroup, NumGroups: 1})
	rankings := [][]models.Standing{
		{row("a1", 3, 9), row("a2", 3, 6), row("a3", 3, 3)},
		{row("b1", 3, 7), row("b2", 3, 4), row("b3", 3, 1)},
	}

	adv, err := Plan(s, 0, rankings)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	want := []string{"a1", "a2", "b1", "b2"}
	if len(adv.Qualifiers) != len(want) {
		t.Fatalf("expected %v, got %v", want, adv.Qualifiers)
	}
	for i := range want {
		if adv.Qualifiers[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, adv.Qualifiers)
		}
	}
	if adv.From != 0 || adv.To != 1 {
		t.Errorf("unexpected transition %d -> %d", adv.From, adv.To)
	}
	if len(adv.Groups) != 1 || len(adv.Groups[0].TeamIDs) != 4 || adv.Groups[0].Name != "Group A" {
		t.Errorf("unexpected next-phase groups: %+v", adv.Groups)
	}
	if Check(s, 0, rankings) != nil {
		t.Error("Check must agree with Plan")
	}
}

func TestPlanIntoElimination(t *testing.T) {
	s := twoGroupSchema(t, 2, models.Phase{Kind: models.PhaseKindElimination})
	rankings := [][]models.Standing{
		{row("a1", 1, 3), row("a2", 1, 0)},
		{row("b1", 1, 3), row("b2", 1, 0)},
	}
	adv, err := Plan(s, 0, rankings)
	if err != nil {
		t.Fatal(err)
	}
	if len(adv.EliminationTeams) != 2 || adv.EliminationTeams[0] != "a1" || adv.EliminationTeams[1] != "b1" {
		t.Errorf("unexpected elimination list: %v", adv.EliminationTeams)
	}
	if adv.Groups != nil {
		t.Error("elimination phases have no groups")
	}
}

func TestPlanTruncatesToAdvancement(t *testing.T) {
	s := twoGroupSchema(t, 3, models.Phase{Kind: models.PhaseKindElimination})
	rankings := [][]models.Standing{
		{row("a1", 2, 6), row("a2", 2, 3), row("a3", 2, 0)},
		{row("b1", 2, 6), row("b2", 2, 3), row("b3", 2, 0)},
	}
	adv, err := Plan(s, 0, rankings)
	if err != nil {
		t.Fatal(err)
	}
	// quota is 2 per group; the concatenation is cut at 3.
	want := []string{"a1", "a2", "b1"}
	for i := range want {
		if adv.Qualifiers[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, adv.Qualifiers)
		}
	}
}

func TestPlanInsufficientQualifiers(t *testing.T) {
	s := twoGroupSchema(t, 4, models.Phase{Kind: models.PhaseKindGroup, NumGroups: 1})
	rankings := [][]models.Standing{
		{row("a1", 1, 3), row("a2", 1, 0)},
		{row("b1", 0, 0), row("b2", 0, 0), row("b3", 1, 3)},
	}
	// Unplayed rows are skipped, so b3 is the only qualifiable team of group B.
	_, err := Plan(s, 0, rankings)
	if !errors.Is(err, ErrInsufficientQualifiers) {
		t.Fatalf("expected ErrInsufficientQualifiers, got %v", err)
	}
	var insufficient *InsufficientQualifiersError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientQualifiersError, got %T", err)
	}
	if insufficient.Required != 4 || insufficient.Actual != 3 {
		t.Errorf("expected required 4 actual 3, got %+v", insufficient)
	}
}

func TestPlanRejections(t *testing.T) {
	t.Run("final phase", func(t *testing.T) {
		s := twoGroupSchema(t, 2, models.Phase{Kind: models.PhaseKindElimination})
		if _, err := Plan(s, 1, nil); !errors.Is(err, ErrNoNextPhase) {
			t.Errorf("expected ErrNoNextPhase, got %v", err)
		}
	})
	t.Run("advancement missing", func(t *testing.T) {
		s, err := NewSchema(Normalize([]models.Phase{
			{Kind: models.PhaseKindGroup, NumGroups: 2},
			{Kind: models.PhaseKindGroup, NumGroups: 1},
		}))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Plan(s, 0, nil); !errors.Is(err, ErrAdvancementNotConfigured) {
			t.Errorf("expected ErrAdvancementNotConfigured, got %v", err)
		}
	})
	t.Run("elimination source", func(t *testing.T) {
		s, err := NewSchema(Normalize([]models.Phase{
			{Kind: models.PhaseKindElimination, Advancement: intPtr(2)},
			{Kind: models.PhaseKindGroup, NumGroups: 1},
		}))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Plan(s, 0, nil); !errors.Is(err, ErrUnsupportedPhaseKind) {
			t.Errorf("expected ErrUnsupportedPhaseKind, got %v", err)
		}
	})
	t.Run("out of range", func(t *testing.T) {
		s := twoGroupSchema(t, 2, models.Phase{Kind: models.PhaseKindElimination})
		if _, err := Plan(s, 5, nil); !errors.Is(err, ErrPhaseOutOfRange) {
			t.Errorf("expected ErrPhaseOutOfRange, got %v", err)
		}
	})
}

func TestDistribute(t *testing.T) {
	got := Distribute([]string{"q1", "q2", "q3", "q4", "q5"}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if len(got[0].TeamIDs) != 3 || got[0].TeamIDs[0] != "q1" || got[0].TeamIDs[2] != "q3" {
		t.Errorf("group A should hold the first block: %v", got[0].TeamIDs)
	}
	if len(got[1].TeamIDs) != 2 || got[1].TeamIDs[0] != "q4" {
		t.Errorf("group B should hold the rest: %v", got[1].TeamIDs)
	}

	sparse := Distribute([]string{"q1"}, 3)
	if len(sparse) != 3 || len(sparse[1].TeamIDs) != 0 || len(sparse[2].TeamIDs) != 0 {
		t.Errorf("extra groups should be empty: %+v", sparse)
	}
}

func TestMarkProjected(t *testing.T) {
	ranked := []models.Standing{row("a", 2, 6), row("b", 2, 3), row("c", 2, 0), row("d", 0, 0)}
	MarkProjected(ranked, 2)

	want := []models.Qualification{
		models.QualificationQualified,
		models.QualificationQualified,
		models.QualificationEliminated,
		models.QualificationPending,
	}
	for i, q := range want {
		if ranked[i].Qualification != q {
			t.Errorf("row %s: expected %s, got %s", ranked[i].TeamID, q, ranked[i].Qualification)
		}
	}
}

func TestMarkProjectedSkipsUnplayedRowAboveCut(t *testing.T) {
	// t1 has not played but ranks above t3, who lost its only match.
	ranked := []models.Standing{row("t2", 1, 3), row("t1", 0, 0), row("t3", 1, 0)}
	MarkProjected(ranked, 2)

	want := map[string]models.Qualification{
		"t2": models.QualificationQualified,
		"t1": models.QualificationPending,
		"t3": models.QualificationQualified,
	}
	for _, r := range ranked {
		if r.Qualification != want[r.TeamID] {
			t.Errorf("row %s: expected %s, got %s", r.TeamID, want[r.TeamID], r.Qualification)
		}
	}

	selected := Qualifiable(ranked, 2)
	for _, r := range selected {
		if r.Qualification != models.QualificationQualified {
			t.Errorf("selected row %s is marked %s", r.TeamID, r.Qualification)
		}
	}
}

func TestMarkFinal(t *testing.T) {
	ranked := []models.Standing{row("a", 2, 6), row("b", 2, 3)}
	MarkFinal(ranked, map[string]bool{"b": true})
	if ranked[0].Qualification != models.QualificationEliminated || ranked[1].Qualification != models.QualificationQualified {
		t.Errorf("unexpected final marks: %+v", ranked)
	}
}
