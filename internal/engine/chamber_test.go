package engine

import "testing"

func TestExtractRaceKeySenate(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantKey string
		wantOK  bool
	}{
		{"ohio", "Which party will win the OH Senate race?", "OH-SEN", true},
		{"pennsylvania", "Which party will win the PA Senate race?", "PA-SEN", true},
		{"embedded", "Special: Which party will win the GA Senate race in 2022?", "GA-SEN", true},
		{"lowercase region", "Which party will win the oh Senate race?", "", false},
		{"governor label", "Which party will win TX governor's race?", "", false},
		{"unrelated market", "Who will win the 2024 presidential election?", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Senate.ExtractRaceKey(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if !key.IsZero() {
					t.Errorf("non-match returned non-zero key %v", key)
				}
				return
			}
			if key.String() != tt.wantKey {
				t.Errorf("key = %q, want %q", key.String(), tt.wantKey)
			}
		})
	}
}

func TestExtractRaceKeyGovernor(t *testing.T) {
	key, ok := Governor.ExtractRaceKey("Which party will win TX governor's race?")
	if !ok {
		t.Fatal("governor label did not match")
	}
	if key.String() != "TX-GOV" {
		t.Errorf("key = %q, want %q", key.String(), "TX-GOV")
	}

	if _, ok := Governor.ExtractRaceKey("Which party will win the OH Senate race?"); ok {
		t.Error("governor pattern matched a senate label")
	}
}

func TestToplinesFile(t *testing.T) {
	if got := Senate.ToplinesFile(2022); got != "senate_state_toplines_2022.csv" {
		t.Errorf("senate file = %q", got)
	}
	if got := Governor.ToplinesFile(2022); got != "governor_state_toplines_2022.csv" {
		t.Errorf("governor file = %q", got)
	}
}

func TestChamberByName(t *testing.T) {
	c, ok := ChamberByName("senate")
	if !ok || c.Contest != "SEN" {
		t.Errorf("senate lookup = %+v, %v", c, ok)
	}
	if _, ok := ChamberByName("house"); ok {
		t.Error("unknown chamber looked up successfully")
	}
}
