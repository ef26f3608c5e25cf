package ai

import (
	"reflect"
	"testing"
)

func TestExtractExercises(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			"aliases canonicalize",
			"bench and ohp today",
			[]string{"bench press", "overhead press"},
		},
		{
			"canonical order regardless of mention order",
			"ohp then squats then bench",
			[]string{"bench press", "overhead press", "squat"},
		},
		{
			"whole word only",
			"benchmark my rowing",
			nil,
		},
		{
			"push split substitutes staples",
			"push day please",
			[]string{"bench press", "overhead press", "dip"},
		},
		{
			"leg split singular",
			"leg day please",
			[]string{"squat", "lunge", "leg press"},
		},
		{
			"explicit exercises beat split fallback",
			"push day, just bench",
			[]string{"bench press"},
		},
		{
			"nothing recognized",
			"I feel tired",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractExercises(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractExercises(%q) = %v; want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseSetSpec(t *testing.T) {
	cases := []struct {
		line     string
		exercise string
		reps     int
		count    int
	}{
		{"bench press 3x8", "bench press", 8, 3},
		{"bench press 8x3", "bench press", 8, 3},
		{"squat 5 sets of 5", "squat", 5, 5},
		{"deadlift 12x10", "deadlift", 10, 12},
		{"Weighted Dips", "Weighted Dips", defaultReps, defaultSetCount},
		{"curls - 4x12", "curls", 12, 4},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			ex, reps, count := ParseSetSpec(tc.line)
			if ex != tc.exercise || reps != tc.reps || count != tc.count {
				t.Fatalf("ParseSetSpec(%q) = %q, %d, %d; want %q, %d, %d",
					tc.line, ex, reps, count, tc.exercise, tc.reps, tc.count)
			}
		})
	}
}

func TestDisambiguateSetsReps(t *testing.T) {
	cases := []struct {
		a, b        int
		reps, count int
	}{
		{3, 12, 12, 3},
		{12, 3, 12, 3},
		{5, 5, 5, 5},
		{10, 12, 12, 10}, // both over the cap: sets-first convention
	}
	for _, tc := range cases {
		reps, count, ok := disambiguateSetsReps(tc.a, tc.b)
		if !ok || reps != tc.reps || count != tc.count {
			t.Errorf("disambiguateSetsReps(%d, %d) = %d, %d, %v; want %d, %d",
				tc.a, tc.b, reps, count, ok, tc.reps, tc.count)
		}
	}
}

func TestSetSpecNear(t *testing.T) {
	text := "bench 3x8, ohp 5 sets of 5, squats too"

	if r, c := setSpecNear(text, "bench press"); r != 8 || c != 3 {
		t.Fatalf("bench press: got reps=%d count=%d; want 8, 3", r, c)
	}
	if r, c := setSpecNear(text, "overhead press"); r != 5 || c != 5 {
		t.Fatalf("overhead press: got reps=%d count=%d; want 5, 5", r, c)
	}
	// No prescription before the clause boundary: defaults.
	if r, c := setSpecNear(text, "squat"); r != defaultReps || c != defaultSetCount {
		t.Fatalf("squat: got reps=%d count=%d; want defaults", r, c)
	}
	// Absent exercise: defaults.
	if r, c := setSpecNear(text, "deadlift"); r != defaultReps || c != defaultSetCount {
		t.Fatalf("deadlift: got reps=%d count=%d; want defaults", r, c)
	}
}
