package ai

import (
	"regexp"
	"strconv"
	"strings"
)

// canonicalExercise maps a canonical name to the whole-word patterns that
// count as a mention. Aliases like "ohp" live here too. Table order is the
// output order of ExtractExercises, so results are deterministic regardless
// of mention order.
type canonicalExercise struct {
	name     string
	patterns []string
}

var exerciseTable = []canonicalExercise{
	{"bench press", []string{"bench press", "bench", "benching"}},
	{"incline press", []string{"incline press", "incline bench", "incline"}},
	{"overhead press", []string{"overhead press", "ohp", "overhead", "shoulder press"}},
	{"squat", []string{"squat", "squats", "back squat", "front squat"}},
	{"deadlift", []string{"deadlift", "deadlifts", "dl"}},
	{"barbell row", []string{"barbell row", "row", "rows", "bent over row"}},
	{"pull up", []string{"pull up", "pull ups", "pull-up", "pull-ups", "pullup", "pullups", "chin up", "chin-up"}},
	{"dip", []string{"dip", "dips"}},
	{"curl", []string{"curl", "curls", "bicep curl", "bicep curls"}},
	{"lateral raise", []string{"lateral raise", "lateral raises", "laterals"}},
	{"lunge", []string{"lunge", "lunges"}},
	{"leg press", []string{"leg press"}},
}

// splitDefaults substitutes staple exercises when the text names a training
// split but no concrete exercises.
var splitDefaults = map[string][]string{
	"push": {"bench press", "overhead press", "dip"},
	"pull": {"barbell row", "pull up", "curl"},
	"legs": {"squat", "lunge", "leg press"},
}

var exercisePatternRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, ex := range exerciseTable {
		for _, p := range ex.patterns {
			res[p] = regexp.MustCompile(`\b` + strings.ReplaceAll(regexp.QuoteMeta(p), ` `, `\s+`) + `\b`)
		}
	}
	return res
}()

// ExtractExercises returns the canonical exercise names mentioned in text,
// in canonical-table order. When nothing matches but the text names a known
// split (push/pull/legs), that split's staple exercises are substituted.
func ExtractExercises(text string) []string {
	t := strings.ToLower(text)
	var out []string
	for _, ex := range exerciseTable {
		for _, p := range ex.patterns {
			if exercisePatternRes[p].MatchString(t) {
				out = append(out, ex.name)
				break
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	if split, ok := detectSplit(t); ok {
		return append([]string(nil), splitDefaults[split]...)
	}
	return nil
}

var splitRes = map[string]*regexp.Regexp{
	"push": regexp.MustCompile(`\bpush\b`),
	"pull": regexp.MustCompile(`\bpull\b`),
	"legs": regexp.MustCompile(`\blegs?\b`),
}

func detectSplit(text string) (string, bool) {
	for _, split := range []string{"push", "pull", "legs"} {
		if splitRes[split].MatchString(strings.ToLower(text)) {
			return split, true
		}
	}
	return "", false
}

const (
	defaultReps     = 8
	defaultSetCount = 3

	// Rep counts rarely run this low per set, so when an NxM pair is
	// ambiguous the smaller number (up to 8) is read as the set count.
	setCountCap = 8
)

var (
	nxmRe    = regexp.MustCompile(`\b(\d{1,3})\s*[x×]\s*(\d{1,3})\b`)
	setsOfRe = regexp.MustCompile(`\b(\d{1,2})\s+sets?\s+of\s+(\d{1,3})\b`)
)

// ParseSetSpec reads a set/rep prescription out of a single line like
// "bench press 3x8" or "squat 5 sets of 5". The remaining text is the
// exercise name, kept verbatim. Missing numbers fall back to reps=8,
// sets=3.
func ParseSetSpec(line string) (exercise string, reps, count int) {
	reps, count = defaultReps, defaultSetCount
	rest := line

	if m := setsOfRe.FindStringSubmatchIndex(line); m != nil {
		c, _ := strconv.Atoi(line[m[2]:m[3]])
		r, _ := strconv.Atoi(line[m[4]:m[5]])
		if okReps(r) && okCount(c) {
			reps, count = r, c
		}
		rest = line[:m[0]] + line[m[1]:]
	} else if m := nxmRe.FindStringSubmatchIndex(line); m != nil {
		a, _ := strconv.Atoi(line[m[2]:m[3]])
		b, _ := strconv.Atoi(line[m[4]:m[5]])
		if r, c, ok := disambiguateSetsReps(a, b); ok {
			reps, count = r, c
		}
		rest = line[:m[0]] + line[m[1]:]
	}

	exercise = strings.Trim(strings.TrimSpace(rest), ":,-")
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		exercise = strings.TrimSpace(line)
	}
	return exercise, reps, count
}

// disambiguateSetsReps decides which of an NxM pair is the set count:
// the smaller of the two, provided it fits under the cap. "3x12" and
// "12x3" both read as 3 sets of 12.
func disambiguateSetsReps(a, b int) (reps, count int, ok bool) {
	lo, hi := a, b
	if b < a {
		lo, hi = b, a
	}
	if lo <= setCountCap {
		reps, count = hi, lo
	} else {
		// Both large; read the conventional sets-first order.
		reps, count = b, a
	}
	if !okReps(reps) || !okCount(count) {
		return 0, 0, false
	}
	return reps, count, true
}

func okReps(r int) bool  { return r >= 1 && r <= 100 }
func okCount(c int) bool { return c >= 1 && c <= 50 }

// setSpecNear looks for an explicit prescription in the text after a given
// exercise's mention, e.g. "bench 3x8, ohp 5x5". Falls back to defaults.
func setSpecNear(text, canonical string) (reps, count int) {
	reps, count = defaultReps, defaultSetCount
	t := strings.ToLower(text)

	loc := -1
	for _, ex := range exerciseTable {
		if ex.name != canonical {
			continue
		}
		for _, p := range ex.patterns {
			if l := exercisePatternRes[p].FindStringIndex(t); l != nil && l[1] > loc {
				loc = l[1]
			}
		}
	}
	if loc < 0 {
		return reps, count
	}

	// Only read a prescription before the next clause boundary, so one
	// exercise's numbers don't bleed into the next.
	tail := t[loc:]
	if cut := strings.IndexAny(tail, ",;.\n"); cut >= 0 {
		tail = tail[:cut]
	}
	if m := setsOfRe.FindStringSubmatch(tail); m != nil {
		c, _ := strconv.Atoi(m[1])
		r, _ := strconv.Atoi(m[2])
		if okReps(r) && okCount(c) {
			return r, c
		}
	}
	if m := nxmRe.FindStringSubmatch(tail); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if r, c, ok := disambiguateSetsReps(a, b); ok {
			return r, c
		}
	}
	return reps, count
}
