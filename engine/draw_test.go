package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"things_future/words"
)

// scripted returns fixed indexes in order, clamped to n.
type scripted struct {
	idx []int
	ns  []int
}

func (s *scripted) IntN(n int) int {
	s.ns = append(s.ns, n)
	if len(s.idx) == 0 {
		return 0
	}
	i := s.idx[0]
	s.idx = s.idx[1:]
	if i >= n {
		return n - 1
	}
	return i
}

func testCatalog() words.Catalog {
	return words.Catalog{
		words.Future: {"A", "B"},
		words.Thing:  {"C"},
		words.Theme:  {"D", "E", "F"},
	}
}

func TestDraw_EmptyCategoryYieldsPlaceholder(t *testing.T) {
	cat := words.Catalog{words.Future: {}}
	assert.Equal(t, Placeholder, Draw(words.Future, cat, NewExposure(), NewSeeded(1)))
	assert.Equal(t, Placeholder, Draw(words.Theme, cat, NewExposure(), NewSeeded(1)))
}

func TestDraw_SkipsExposedWords(t *testing.T) {
	cat := testCatalog()
	exp := Exposure{words.Theme: {"D", "F"}}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "E", Draw(words.Theme, cat, exp, NewSeeded(uint64(i))))
	}
}

func TestDraw_ChoosesAmongCandidatesOnly(t *testing.T) {
	src := &scripted{idx: []int{1}}
	got := Draw(words.Theme, testCatalog(), Exposure{words.Theme: {"E"}}, src)

	assert.Equal(t, "F", got)
	assert.Equal(t, []int{2}, src.ns, "index range must span the two remaining candidates")
}

func TestDraw_FullExposureUsesWholeList(t *testing.T) {
	src := &scripted{idx: []int{2}}
	got := Draw(words.Theme, testCatalog(), Exposure{words.Theme: {"D", "E", "F"}}, src)

	assert.Equal(t, "F", got)
	assert.Equal(t, []int{3}, src.ns)
}

func TestDraw_DoesNotMutateInputs(t *testing.T) {
	cat := testCatalog()
	exp := Exposure{words.Theme: {"D"}}

	Draw(words.Theme, cat, exp, NewSeeded(7))

	assert.Equal(t, []string{"D", "E", "F"}, cat.Words(words.Theme))
	assert.Equal(t, []string{"D"}, exp.Words(words.Theme))
}

func TestDraw_ExhaustionCoverage(t *testing.T) {
	all := []string{"ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN"}
	cat := words.Catalog{words.Future: all}

	for seed := uint64(0); seed < 20; seed++ {
		rng := NewSeeded(seed)
		exp := NewExposure()
		seen := map[string]bool{}
		for i := 0; i < len(all); i++ {
			w := Draw(words.Future, cat, exp, rng)
			require.False(t, seen[w], "seed %d: %s repeated within the first cycle", seed, w)
			seen[w] = true
			exp = RecordDraw(words.Future, w, exp)
		}
		assert.Len(t, seen, len(all))
		assert.ElementsMatch(t, all, exp.Words(words.Future))
	}
}

func TestDraw_ResetCollapsesToSingleton(t *testing.T) {
	cat := testCatalog()
	exp := Exposure{words.Theme: {"D", "E", "F"}}

	for seed := uint64(0); seed < 20; seed++ {
		w := Draw(words.Theme, cat, exp, NewSeeded(seed))
		next := RecordDraw(words.Theme, w, exp)
		assert.Equal(t, []string{w}, next.Words(words.Theme))
	}
}

func TestDraw_AfterResetExcludesWordJustShown(t *testing.T) {
	cat := testCatalog()
	exp := Exposure{words.Future: {"A", "B"}}

	w := Draw(words.Future, cat, exp, &scripted{idx: []int{0}})
	require.Equal(t, "A", w)
	exp = RecordDraw(words.Future, w, exp)

	for seed := uint64(0); seed < 10; seed++ {
		assert.Equal(t, "B", Draw(words.Future, cat, exp, NewSeeded(seed)))
	}
}

func TestDraw_SingleWordCategory(t *testing.T) {
	cat := testCatalog()
	exp := NewExposure()
	rng := NewSeeded(3)

	for i := 0; i < 3; i++ {
		w := Draw(words.Thing, cat, exp, rng)
		assert.Equal(t, "C", w)
		exp = RecordDraw(words.Thing, w, exp)
		assert.Equal(t, []string{"C"}, exp.Words(words.Thing))
	}
}

func TestDraw_IgnoresExposedWordsMissingFromCatalog(t *testing.T) {
	cat := words.Catalog{words.Future: {"A", "B"}}
	exp := Exposure{words.Future: {"GONE", "A"}}

	for seed := uint64(0); seed < 10; seed++ {
		assert.Equal(t, "B", Draw(words.Future, cat, exp, NewSeeded(seed)))
	}
}

func TestDraw_RoughlyUniform(t *testing.T) {
	cat := testCatalog()
	rng := NewSeeded(42)
	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		counts[Draw(words.Theme, cat, NewExposure(), rng)]++
	}
	for _, w := range cat.Words(words.Theme) {
		assert.InDelta(t, 1000, counts[w], 150, "word %s", w)
	}
}
