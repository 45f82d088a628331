package macro

import (
	"testing"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

func verdicts(total, positives int) []model.MacroIndicator {
	inds := make([]model.MacroIndicator, total)
	for i := range inds {
		inds[i] = model.MacroIndicator{Name: definitionsV16[i%len(definitionsV16)].Name, Known: true, Verdict: i < positives}
	}
	return inds
}

func TestAggregate_FloorForAllCounts(t *testing.T) {
	for _, total := range []int{12, 16} {
		for positives := 0; positives <= total; positives++ {
			got := Aggregate(verdicts(total, positives), nil)
			want := 100 * positives / total
			if got != want {
				t.Errorf("total=%d positives=%d: got %d, want %d", total, positives, got, want)
			}
			if got < 0 || got > 100 {
				t.Errorf("score out of range: %d", got)
			}
		}
	}
}

func TestAggregate_UnknownTakesConfiguredDefault(t *testing.T) {
	inds := []model.MacroIndicator{
		{Name: "twd_strong", Known: true, Verdict: true},
		{Name: "vix_low", Known: false},
		{Name: "sox_up", Known: false},
		{Name: "cpi_ok", Known: true, Verdict: false},
	}

	// vix_low defaults to false, sox_up unconfigured falls back to positive.
	score := Aggregate(inds, map[string]bool{"vix_low": false})
	if score != 50 {
		t.Errorf("expected 50 with one configured-negative default, got %d", score)
	}

	// With no defaults configured, every unknown is fail-open positive.
	score = Aggregate(inds, nil)
	if score != 75 {
		t.Errorf("expected 75 under pure fail-open policy, got %d", score)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty indicator set, got %d", got)
	}
}

func TestDefinitions_Versions(t *testing.T) {
	if n := len(Definitions(SetV16)); n != 16 {
		t.Fatalf("expected 16 definitions, got %d", n)
	}
	v12 := Definitions(SetV12)
	if len(v12) != 12 {
		t.Fatalf("expected 12 legacy definitions, got %d", len(v12))
	}
	for i, def := range v12 {
		if def.Name != definitionsV16[i].Name {
			t.Errorf("legacy roster diverged at %d: %s", i, def.Name)
		}
	}
}
