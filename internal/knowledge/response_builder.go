package knowledge

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// buildMatchOutputs fills result.Matches, stopping once the serialized
// matches would exceed tokenLimit. The first match is always included.
func buildMatchOutputs(result *QueryResult, matches []Match, tokenLimit int) {
	result.Matches = make([]MatchOutput, 0, len(matches))

	if tokenLimit <= 0 {
		for _, m := range matches {
			result.Matches = append(result.Matches, toMatchOutput(m))
		}
		result.MatchesIncluded = len(result.Matches)
		return
	}

	counter, err := NewTokenCounter()
	if err != nil {
		logrus.WithError(err).Warn("Token counter unavailable, approximating token counts")
	}

	totalTokens := 0
	for _, m := range matches {
		output := toMatchOutput(m)

		data, _ := json.Marshal(output)
		tokens := counter.CountTokens(string(data))

		if len(result.Matches) > 0 && totalTokens+tokens > tokenLimit {
			result.TokenLimitReached = true
			break
		}

		result.Matches = append(result.Matches, output)
		totalTokens += tokens

		// A single oversized match is still returned, flagged.
		if len(result.Matches) == 1 && totalTokens > tokenLimit {
			result.TokenLimitReached = true
			break
		}
	}

	result.MatchesIncluded = len(result.Matches)
	result.TokenCount = totalTokens
}
