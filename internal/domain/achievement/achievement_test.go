package achievement

import (
	"testing"

	"partyconnect/internal/domain/model"
)

func ids(list []Achievement) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func TestForEmptyProfile(t *testing.T) {
	if earned := For(model.Profile{}); len(earned) != 0 {
		t.Errorf("empty profile earned %v, want none", ids(earned))
	}
}

func TestForCommunityLeader(t *testing.T) {
	p := model.Profile{CreatedEvents: []string{"1", "2", "3"}}
	earned := ids(For(p))
	if !contains(earned, "community-leader") {
		t.Errorf("expected community-leader in %v", earned)
	}
	if contains(earned, "social-butterfly") {
		t.Errorf("did not expect social-butterfly in %v", earned)
	}
}

func TestForThresholds(t *testing.T) {
	cases := []struct {
		name    string
		profile model.Profile
		id      string
		want    bool
	}{
		{"one sponsorship earns sponsor badge", model.Profile{SponsoredEvents: []string{"1"}}, "first-time-sponsor", true},
		{"two created events is not enough", model.Profile{CreatedEvents: []string{"1", "2"}}, "community-leader", false},
		{"five joins earn butterfly", model.Profile{JoinedEvents: []string{"1", "2", "3", "4", "5"}}, "social-butterfly", true},
		{"four joins do not", model.Profile{JoinedEvents: []string{"1", "2", "3", "4"}}, "social-butterfly", false},
		{"ten positive ratings earn contributor", model.Profile{PositiveRatings: 10}, "top-contributor", true},
		{"nine do not", model.Profile{PositiveRatings: 9}, "top-contributor", false},
		{"ten successful events earn master", model.Profile{SuccessfulEvents: 10}, "event-master", true},
	}
	for _, tc := range cases {
		if got := Earned(tc.profile, tc.id); got != tc.want {
			t.Errorf("%s: Earned(%s) = %v, want %v", tc.name, tc.id, got, tc.want)
		}
	}
}

func TestEarnedUnknownID(t *testing.T) {
	if Earned(model.Profile{PositiveRatings: 100}, "no-such-badge") {
		t.Error("unknown badge id should report false")
	}
}

func TestForPreservesCatalogOrder(t *testing.T) {
	p := model.Profile{
		CreatedEvents:    []string{"1", "2", "3"},
		JoinedEvents:     []string{"1", "2", "3", "4", "5"},
		SponsoredEvents:  []string{"1"},
		PositiveRatings:  10,
		SuccessfulEvents: 10,
	}
	earned := ids(For(p))
	want := []string{"first-time-sponsor", "community-leader", "social-butterfly", "top-contributor", "event-master"}
	if len(earned) != len(want) {
		t.Fatalf("earned %v, want %v", earned, want)
	}
	for i := range want {
		if earned[i] != want[i] {
			t.Fatalf("earned %v, want %v", earned, want)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 badges, got %d", len(all))
	}
	all[0].ID = "mutated"
	if All()[0].ID == "mutated" {
		t.Error("All leaked the internal catalog")
	}
}
