package knowledge

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark-chris/knnchat/internal/lexicon"
)

// OutputFormat specifies the output format
type OutputFormat string

// Output format constants.
const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// FormatOutput formats a query result for display
func FormatOutput(result QueryResult, format OutputFormat, verbose bool) (string, error) {
	switch format {
	case FormatText:
		return formatText(result, verbose), nil
	default:
		return formatJSON(result)
	}
}

func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatText(result QueryResult, verbose bool) string {
	if !result.Matched {
		return "No match"
	}

	if !verbose && len(result.Matches) <= 1 {
		return result.Response
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d match(es) for %q\n", result.MatchCount, result.Query))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, m := range result.Matches {
		sb.WriteString(fmt.Sprintf("[%d] %s (score: %.4f)\n", i+1, m.ID, m.Score))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(fmt.Sprintf("INPUT:    %s\n", m.Input))
		sb.WriteString(fmt.Sprintf("RESPONSE: %s\n\n", m.Response))
	}

	if result.TokenLimitReached {
		sb.WriteString(fmt.Sprintf("(token limit reached: %d of %d matches shown)\n",
			result.MatchesIncluded, result.MatchCount))
	}
	if result.Stale {
		sb.WriteString("(index has learned interactions since the last rebuild; scores are approximate)\n")
	}

	return sb.String()
}

// FormatInteractionDetail formats a single interaction for display
func FormatInteractionDetail(in Interaction, format OutputFormat) (string, error) {
	if format != FormatText {
		return formatJSON(in)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", in.ID))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Input:    %s\n", in.Input))
	sb.WriteString(fmt.Sprintf("Response: %s\n", in.Response))
	if len(in.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags:     %s\n", strings.Join(in.Tags, ", ")))
	}

	terms := sortedTerms(in.Input)
	if len(terms) > 0 {
		sb.WriteString(fmt.Sprintf("Terms:    %s\n", strings.Join(terms, ", ")))
	}
	return sb.String(), nil
}

// AugmentResult lists the synonym rewrites of a sentence
type AugmentResult struct {
	Sentence string   `json:"sentence"`
	Rewrites []string `json:"rewrites"`
}

// FormatAugmentations formats synonym rewrites for display
func FormatAugmentations(result AugmentResult, format OutputFormat) (string, error) {
	if format != FormatText {
		if result.Rewrites == nil {
			result.Rewrites = []string{}
		}
		return formatJSON(result)
	}

	if len(result.Rewrites) == 0 {
		return fmt.Sprintf("No synonym rewrites for %q", result.Sentence), nil
	}
	return strings.Join(result.Rewrites, "\n"), nil
}

// StatsOutput is the serialized form of index statistics
type StatsOutput struct {
	IndexStats
	TopTerms []TermStat `json:"top_terms,omitempty"`
}

// FormatStats formats index statistics for display
func FormatStats(stats StatsOutput, format OutputFormat) (string, error) {
	if format != FormatText {
		return formatJSON(stats)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents: %d\n", stats.Documents))
	sb.WriteString(fmt.Sprintf("Terms:     %d\n", stats.Terms))
	sb.WriteString(fmt.Sprintf("Stale:     %t\n", stats.Stale))
	if len(stats.TopTerms) > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%-24s %4s %8s\n", "TERM", "DF", "IDF"))
		for _, ts := range stats.TopTerms {
			sb.WriteString(fmt.Sprintf("%-24s %4d %8.4f\n", ts.Term, ts.DocumentFrequency, ts.IDF))
		}
	}
	return sb.String(), nil
}

// sortedTerms returns the distinct normalized terms of text in order
func sortedTerms(text string) []string {
	counts := lexicon.TokenizeAndStem(text)
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
