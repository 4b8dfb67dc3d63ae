package knowledge

import (
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/mark-chris/knnchat/internal/lexicon"
)

// Index holds the corpus and its TF-IDF statistics.
//
// Documents are keyed by corpus position, so two interactions with the same
// input are indexed separately. The document-frequency table is shared by
// every document and by queries.
type Index struct {
	normalizer        *lexicon.Normalizer
	corpus            []Interaction
	byID              map[string]int
	documentFrequency map[string]int
	documentTFIDF     []map[string]float64
	stale             bool
	mu                sync.RWMutex
}

// NewIndex creates an empty index using the default normalizer
func NewIndex() *Index {
	return NewIndexWithNormalizer(lexicon.Default)
}

// NewIndexWithNormalizer creates an empty index that normalizes text with n
func NewIndexWithNormalizer(n *lexicon.Normalizer) *Index {
	return &Index{
		normalizer:        n,
		corpus:            make([]Interaction, 0),
		byID:              make(map[string]int),
		documentFrequency: make(map[string]int),
		documentTFIDF:     make([]map[string]float64, 0),
	}
}

// CalculateTFIDF rebuilds the index from corpus.
//
// The first pass counts, for every term, the number of documents containing
// it. The second weighs each document's terms with
//
//	tf  = count / characters in the raw input
//	idf = ln(len(corpus) / documentFrequency[term])
//
// Calling it twice with the same corpus yields identical tables.
func (idx *Index) CalculateTFIDF(corpus []Interaction) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.corpus = append(make([]Interaction, 0, len(corpus)), corpus...)
	idx.byID = make(map[string]int, len(corpus))
	idx.documentFrequency = make(map[string]int)
	idx.documentTFIDF = make([]map[string]float64, len(corpus))

	counts := make([]lexicon.TermCounts, len(corpus))
	for i, in := range idx.corpus {
		if in.ID != "" {
			idx.byID[in.ID] = i
		}
		counts[i] = idx.normalizer.TokenizeAndStem(in.Input)
		for term := range counts[i] {
			idx.documentFrequency[term]++
		}
	}

	totalDocuments := len(idx.corpus)
	for i, in := range idx.corpus {
		idx.documentTFIDF[i] = idx.weigh(counts[i], charLen(in.Input), totalDocuments)
	}
	idx.stale = false
}

// UpdateTFIDFForNewInteraction appends in to the index and returns its
// position.
//
// Only the new document's terms are counted into the document-frequency
// table and only the new document is weighed. Vectors of earlier documents
// keep the weights they were given, so the index is approximate until the
// next CalculateTFIDF; Stale reports this.
func (idx *Index) UpdateTFIDFForNewInteraction(in Interaction) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	counts := idx.normalizer.TokenizeAndStem(in.Input)
	for term := range counts {
		idx.documentFrequency[term]++
	}

	pos := len(idx.corpus)
	idx.corpus = append(idx.corpus, in)
	if in.ID != "" {
		idx.byID[in.ID] = pos
	}
	idx.documentTFIDF = append(idx.documentTFIDF, idx.weigh(counts, charLen(in.Input), len(idx.corpus)))
	if pos > 0 {
		idx.stale = true
	}
	return pos
}

// FindBestMatch returns the interaction whose input is most similar to
// query. The query is weighed against the current document-frequency table.
// The first document with the highest score wins; an empty index returns
// NoMatch.
func (idx *Index) FindBestMatch(query string) Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.corpus) == 0 {
		return NoMatch
	}

	queryVec := idx.queryVector(query)
	best := Match{Position: -1, Score: -1}
	for i, docVec := range idx.documentTFIDF {
		score := CosineSimilarity(queryVec, docVec)
		if score > best.Score {
			best = Match{Interaction: idx.corpus[i], Position: i, Score: score}
		}
	}
	return best
}

// Rank scores every document against query and returns up to limit matches,
// best first. Equal scores keep corpus order. A limit <= 0 returns all.
func (idx *Index) Rank(query string, limit int) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queryVec := idx.queryVector(query)
	matches := make([]Match, len(idx.corpus))
	for i, docVec := range idx.documentTFIDF {
		matches[i] = Match{
			Interaction: idx.corpus[i],
			Position:    i,
			Score:       CosineSimilarity(queryVec, docVec),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// QueryVector returns the TF-IDF vector a query would be scored with
func (idx *Index) QueryVector(query string) map[string]float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.queryVector(query)
}

func (idx *Index) queryVector(query string) map[string]float64 {
	counts := idx.normalizer.TokenizeAndStem(query)
	return idx.weigh(counts, charLen(query), len(idx.corpus))
}

// weigh computes tf*idf for each counted term. A term missing from the
// document-frequency table gets weight 0 instead of an infinite idf.
func (idx *Index) weigh(counts lexicon.TermCounts, length, totalDocuments int) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	for term, count := range counts {
		vec[term] = tfidf(count, length, totalDocuments, idx.documentFrequency[term])
	}
	return vec
}

func tfidf(count, length, totalDocuments, documentFrequency int) float64 {
	if length == 0 || totalDocuments == 0 || documentFrequency == 0 {
		return 0
	}
	tf := float64(count) / float64(length)
	return tf * idf(totalDocuments, documentFrequency)
}

func idf(totalDocuments, documentFrequency int) float64 {
	return math.Log(float64(totalDocuments) / float64(documentFrequency))
}

// charLen is the length of the raw text in characters, the tf denominator.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

// GetByID returns the interaction with the given id
func (idx *Index) GetByID(id string) (Interaction, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	pos, ok := idx.byID[id]
	if !ok {
		return Interaction{}, false
	}
	return idx.corpus[pos], true
}

// GetAll returns a copy of the indexed corpus in order
func (idx *Index) GetAll() []Interaction {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]Interaction(nil), idx.corpus...)
}

// Count returns the number of indexed interactions
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.corpus)
}

// Stale reports whether interactions were added since the last full rebuild
func (idx *Index) Stale() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.stale
}

// DocumentFrequency returns the number of documents counted for term
func (idx *Index) DocumentFrequency(term string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.documentFrequency[term]
}

// DocumentVector returns a copy of the stored vector at pos, or nil
func (idx *Index) DocumentVector(pos int) map[string]float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if pos < 0 || pos >= len(idx.documentTFIDF) {
		return nil
	}
	vec := make(map[string]float64, len(idx.documentTFIDF[pos]))
	for k, v := range idx.documentTFIDF[pos] {
		vec[k] = v
	}
	return vec
}

// Stats returns document and term counts
func (idx *Index) Stats() IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return IndexStats{
		Documents: len(idx.corpus),
		Terms:     len(idx.documentFrequency),
		Stale:     idx.stale,
	}
}

// TermStats returns the document-frequency table sorted by descending
// frequency, then term.
func (idx *Index) TermStats() []TermStat {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats := make([]TermStat, 0, len(idx.documentFrequency))
	for term, df := range idx.documentFrequency {
		stats = append(stats, TermStat{
			Term:              term,
			DocumentFrequency: df,
			IDF:               idf(len(idx.corpus), df),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DocumentFrequency != stats[j].DocumentFrequency {
			return stats[i].DocumentFrequency > stats[j].DocumentFrequency
		}
		return stats[i].Term < stats[j].Term
	})
	return stats
}
