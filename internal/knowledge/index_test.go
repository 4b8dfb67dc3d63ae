package knowledge

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

const epsilon = 1e-12

func greetingsCorpus() []Interaction {
	return []Interaction{
		{ID: "greet", Input: "hello there", Response: "hi!"},
		{ID: "morning", Input: "good morning", Response: "hey!"},
		{ID: "music", Input: "I love music", Response: "me too"},
	}
}

func vectorTerms(vec map[string]float64) []string {
	terms := make([]string, 0, len(vec))
	for t := range vec {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// TestCalculateTFIDF_TermSets tests that stored vectors hold exactly the
// normalized terms of each input
func TestCalculateTFIDF_TermSets(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF(greetingsCorpus())

	want := [][]string{
		{"hi"},
		{"good", "morn"},
		{"love", "tunes"},
	}

	for pos, terms := range want {
		got := vectorTerms(idx.DocumentVector(pos))
		if !reflect.DeepEqual(got, terms) {
			t.Errorf("document %d terms = %v, want %v", pos, got, terms)
		}
	}
}

// TestCalculateTFIDF_Weights checks tf uses character length and idf the
// natural log
func TestCalculateTFIDF_Weights(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "apple pie", Response: "yum"},
		{Input: "banana", Response: "ok"},
	})

	vec := idx.DocumentVector(0)
	want := (1.0 / 9.0) * math.Log(2)
	if math.Abs(vec["apple"]-want) > epsilon {
		t.Errorf("weight(apple) = %v, want %v", vec["apple"], want)
	}
	if math.Abs(vec["pie"]-want) > epsilon {
		t.Errorf("weight(pie) = %v, want %v", vec["pie"], want)
	}
}

// TestCalculateTFIDF_DocumentFrequency counts each term once per document
func TestCalculateTFIDF_DocumentFrequency(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "music music fan"},
		{Input: "music room"},
		{Input: "quiet room"},
	})

	tests := map[string]int{
		"tunes": 2,
		"fan":   1,
		"room":  2,
		"quiet": 1,
		"music": 0,
	}
	for term, want := range tests {
		if got := idx.DocumentFrequency(term); got != want {
			t.Errorf("DocumentFrequency(%q) = %d, want %d", term, got, want)
		}
	}
}

// TestCalculateTFIDF_UbiquitousTerm tests that a term in every document has zero weight
func TestCalculateTFIDF_UbiquitousTerm(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "music lover"},
		{Input: "music fan"},
		{Input: "music room"},
	})

	for pos := 0; pos < idx.Count(); pos++ {
		vec := idx.DocumentVector(pos)
		w, ok := vec["tunes"]
		if !ok {
			t.Fatalf("document %d missing term tunes", pos)
		}
		if w != 0 {
			t.Errorf("document %d weight(tunes) = %v, want 0", pos, w)
		}
	}
}

// TestCalculateTFIDF_Idempotent tests that rebuilding twice yields identical tables
func TestCalculateTFIDF_Idempotent(t *testing.T) {
	corpus := greetingsCorpus()
	idx := NewIndex()

	idx.CalculateTFIDF(corpus)
	firstTerms := idx.TermStats()
	firstVecs := make([]map[string]float64, idx.Count())
	for i := range firstVecs {
		firstVecs[i] = idx.DocumentVector(i)
	}

	idx.CalculateTFIDF(corpus)
	if !reflect.DeepEqual(firstTerms, idx.TermStats()) {
		t.Error("document-frequency table changed between rebuilds")
	}
	for i := range firstVecs {
		if !reflect.DeepEqual(firstVecs[i], idx.DocumentVector(i)) {
			t.Errorf("document %d vector changed between rebuilds", i)
		}
	}
}

// TestCalculateTFIDF_CopiesCorpus tests that the caller's slice is not retained
func TestCalculateTFIDF_CopiesCorpus(t *testing.T) {
	corpus := greetingsCorpus()
	idx := NewIndex()
	idx.CalculateTFIDF(corpus)

	corpus[0].Response = "changed"
	if got := idx.GetAll()[0].Response; got != "hi!" {
		t.Errorf("indexed response = %q, want %q", got, "hi!")
	}
}

// TestUpdateTFIDFForNewInteraction_AppendOnly tests the incremental path:
// df grows by the new document's terms, only the new document is weighed,
// and older vectors are untouched until a rebuild.
func TestUpdateTFIDFForNewInteraction_AppendOnly(t *testing.T) {
	corpus := []Interaction{
		{Input: "apple pie", Response: "yum"},
		{Input: "banana", Response: "ok"},
	}
	idx := NewIndex()
	idx.CalculateTFIDF(corpus)
	before := idx.DocumentVector(0)

	added := Interaction{Input: "apple tart", Response: "sweet"}
	pos := idx.UpdateTFIDFForNewInteraction(added)

	if pos != 2 {
		t.Errorf("position = %d, want 2", pos)
	}
	if idx.Count() != 3 {
		t.Errorf("Count() = %d, want 3", idx.Count())
	}
	if got := idx.DocumentFrequency("apple"); got != 2 {
		t.Errorf("DocumentFrequency(apple) = %d, want 2", got)
	}
	if got := idx.DocumentFrequency("tart"); got != 1 {
		t.Errorf("DocumentFrequency(tart) = %d, want 1", got)
	}

	vec := idx.DocumentVector(2)
	wantApple := (1.0 / 10.0) * math.Log(3.0/2.0)
	wantTart := (1.0 / 10.0) * math.Log(3.0)
	if math.Abs(vec["apple"]-wantApple) > epsilon {
		t.Errorf("weight(apple) = %v, want %v", vec["apple"], wantApple)
	}
	if math.Abs(vec["tart"]-wantTart) > epsilon {
		t.Errorf("weight(tart) = %v, want %v", vec["tart"], wantTart)
	}

	if !reflect.DeepEqual(before, idx.DocumentVector(0)) {
		t.Error("incremental update reweighed an existing document")
	}
	if !idx.Stale() {
		t.Error("Stale() = false after incremental update, want true")
	}

	// A full rebuild brings older documents in line with the new statistics.
	idx.CalculateTFIDF(idx.GetAll())
	if idx.Stale() {
		t.Error("Stale() = true after rebuild, want false")
	}
	rebuilt := idx.DocumentVector(0)
	wantRebuilt := (1.0 / 9.0) * math.Log(3.0/2.0)
	if math.Abs(rebuilt["apple"]-wantRebuilt) > epsilon {
		t.Errorf("rebuilt weight(apple) = %v, want %v", rebuilt["apple"], wantRebuilt)
	}
}

// TestUpdateTFIDFForNewInteraction_EmptyIndex tests learning into an empty index
func TestUpdateTFIDFForNewInteraction_EmptyIndex(t *testing.T) {
	idx := NewIndex()
	pos := idx.UpdateTFIDFForNewInteraction(Interaction{ID: "first", Input: "tell me a joke", Response: "no"})

	if pos != 0 {
		t.Errorf("position = %d, want 0", pos)
	}
	if idx.Stale() {
		t.Error("single document index should not be stale")
	}
	if _, ok := idx.GetByID("first"); !ok {
		t.Error("GetByID(first) not found after update")
	}
}

// TestUpdateTFIDFForNewInteraction_DuplicateInput tests that duplicate inputs do not collide
func TestUpdateTFIDFForNewInteraction_DuplicateInput(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{{Input: "pizza time", Response: "first"}})
	idx.UpdateTFIDFForNewInteraction(Interaction{Input: "pizza time", Response: "second"})

	if idx.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", idx.Count())
	}
	if idx.DocumentVector(0) == nil || idx.DocumentVector(1) == nil {
		t.Error("expected both documents to keep a vector")
	}
}

// TestFindBestMatch_EmptyCorpus tests the no-match sentinel
func TestFindBestMatch_EmptyCorpus(t *testing.T) {
	idx := NewIndex()
	m := idx.FindBestMatch("hello")

	if m.Found() {
		t.Error("Found() = true on empty index")
	}
	if m.Position != -1 {
		t.Errorf("Position = %d, want -1", m.Position)
	}
	if m.Interaction.Response != "" {
		t.Errorf("Response = %q, want empty", m.Interaction.Response)
	}
}

// TestFindBestMatch_Greeting covers the synonym scenario: "howdy there"
// prefers "hello there" over "good morning"
func TestFindBestMatch_Greeting(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "hello there", Response: "hi!"},
		{Input: "good morning", Response: "hey!"},
	})

	m := idx.FindBestMatch("howdy there")
	if m.Position != 0 {
		t.Errorf("Position = %d, want 0", m.Position)
	}
	if m.Interaction.Response != "hi!" {
		t.Errorf("Response = %q, want %q", m.Interaction.Response, "hi!")
	}
}

// TestFindBestMatch_IdenticalInput tests that a query equal to an input matches it
func TestFindBestMatch_IdenticalInput(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "what is your name", Response: "knn"},
		{Input: "how old are you", Response: "new"},
		{Input: "tell me a joke", Response: "no"},
	})

	m := idx.FindBestMatch("tell me a joke")
	if m.Position != 2 {
		t.Fatalf("Position = %d, want 2", m.Position)
	}
	if math.Abs(m.Score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0", m.Score)
	}
}

// TestFindBestMatch_FirstWinsOnTie tests that equal scores keep the earliest document
func TestFindBestMatch_FirstWinsOnTie(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "pizza time", Response: "first"},
		{Input: "pizza time", Response: "second"},
		{Input: "salad bar", Response: "third"},
	})

	m := idx.FindBestMatch("pizza")
	if m.Position != 0 {
		t.Errorf("Position = %d, want 0", m.Position)
	}

	// No shared terms: every score is 0 and the first document wins.
	m = idx.FindBestMatch("zebra")
	if m.Position != 0 || m.Score != 0 {
		t.Errorf("got position %d score %v, want 0 and 0", m.Position, m.Score)
	}
}

// TestQueryVector_UnknownTerm tests that terms absent from the df table weigh zero
func TestQueryVector_UnknownTerm(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF(greetingsCorpus())

	vec := idx.QueryVector("zebra")
	w, ok := vec["zebra"]
	if !ok {
		t.Fatal("expected zebra in query vector")
	}
	if w != 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		t.Errorf("weight(zebra) = %v, want 0", w)
	}
}

// TestRank tests ordering, stability and limit
func TestRank(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF([]Interaction{
		{Input: "salad bar", Response: "a"},
		{Input: "pizza time", Response: "b"},
		{Input: "pizza night", Response: "c"},
		{Input: "late night", Response: "d"},
	})

	all := idx.Rank("pizza night", 0)
	if len(all) != 4 {
		t.Fatalf("len(Rank) = %d, want 4", len(all))
	}
	if all[0].Position != 2 {
		t.Errorf("best position = %d, want 2", all[0].Position)
	}
	for i := 1; i < len(all); i++ {
		if all[i].Score > all[i-1].Score {
			t.Errorf("Rank not sorted at %d: %v > %v", i, all[i].Score, all[i-1].Score)
		}
	}
	if last := all[len(all)-1]; last.Position != 0 || last.Score != 0 {
		t.Errorf("last = position %d score %v, want salad bar with 0", last.Position, last.Score)
	}

	top := idx.Rank("pizza night", 2)
	if len(top) != 2 {
		t.Errorf("len(Rank limit 2) = %d, want 2", len(top))
	}
}

// TestIndex_Stats tests document and term counts
func TestIndex_Stats(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF(greetingsCorpus())

	stats := idx.Stats()
	if stats.Documents != 3 {
		t.Errorf("Documents = %d, want 3", stats.Documents)
	}
	if stats.Terms != 5 {
		t.Errorf("Terms = %d, want 5", stats.Terms)
	}

	terms := idx.TermStats()
	if len(terms) != 5 {
		t.Fatalf("len(TermStats) = %d, want 5", len(terms))
	}
	if terms[0].Term != "good" {
		t.Errorf("first term = %q, want alphabetical tie-break %q", terms[0].Term, "good")
	}
}

// TestIndex_GetByID tests id lookups
func TestIndex_GetByID(t *testing.T) {
	idx := NewIndex()
	idx.CalculateTFIDF(greetingsCorpus())

	in, ok := idx.GetByID("music")
	if !ok {
		t.Fatal("GetByID(music) not found")
	}
	if in.Input != "I love music" {
		t.Errorf("Input = %q, want %q", in.Input, "I love music")
	}

	if _, ok := idx.GetByID("missing"); ok {
		t.Error("GetByID(missing) found, want not found")
	}
}
