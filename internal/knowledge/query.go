package knowledge

import (
	"strings"

	"github.com/mark-chris/knnchat/internal/lexicon"
)

// QueryOptions configures a query
type QueryOptions struct {
	Query      string
	Top        int     // matches to return; 0 or 1 returns the best match only
	MinScore   float64 // matches scoring below this are not returned
	TokenLimit int     // cap on output tokens; 0 disables the cap
}

// QueryResult holds the results of a query
type QueryResult struct {
	Query             string        `json:"query"`
	Matched           bool          `json:"matched"`
	Response          string        `json:"response,omitempty"`
	MatchCount        int           `json:"match_count"`
	MatchesIncluded   int           `json:"matches_included"`
	TokenCount        int           `json:"token_count,omitempty"`
	TokenLimitReached bool          `json:"token_limit_reached,omitempty"`
	Stale             bool          `json:"stale,omitempty"`
	Matches           []MatchOutput `json:"matches,omitempty"`
}

// MatchOutput is the serialized form of a single match
type MatchOutput struct {
	ID       string  `json:"id,omitempty"`
	Position int     `json:"position"`
	Input    string  `json:"input"`
	Response string  `json:"response"`
	Score    float64 `json:"score"`
}

// Query runs a query against the index.
//
// The query text is padded around punctuation before matching. A match
// counts only if it scores above zero and at least MinScore: a zero score
// means the query shares no weighted term with the document, and the
// matcher's first-wins rule would otherwise return the first interaction.
func Query(idx *Index, opts QueryOptions) QueryResult {
	result := QueryResult{
		Query: opts.Query,
		Stale: idx.Stale(),
	}
	if strings.TrimSpace(opts.Query) == "" {
		return result
	}

	prepared := lexicon.InsertSpacesAroundPunctuation(opts.Query)

	var candidates []Match
	if opts.Top <= 1 {
		candidates = []Match{idx.FindBestMatch(prepared)}
	} else {
		candidates = idx.Rank(prepared, opts.Top)
	}

	matches := make([]Match, 0, len(candidates))
	for _, m := range candidates {
		if confident(m, opts.MinScore) {
			matches = append(matches, m)
		}
	}

	result.MatchCount = len(matches)
	if len(matches) == 0 {
		return result
	}
	result.Matched = true
	result.Response = matches[0].Interaction.Response

	buildMatchOutputs(&result, matches, opts.TokenLimit)
	return result
}

func confident(m Match, minScore float64) bool {
	return m.Found() && m.Score > 0 && m.Score >= minScore
}

func toMatchOutput(m Match) MatchOutput {
	return MatchOutput{
		ID:       m.Interaction.ID,
		Position: m.Position,
		Input:    m.Interaction.Input,
		Response: m.Interaction.Response,
		Score:    m.Score,
	}
}
