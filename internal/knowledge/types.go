package knowledge

// Interaction is a known prompt and its canned reply.
type Interaction struct {
	ID       string   `yaml:"id,omitempty" json:"id,omitempty"`
	Input    string   `yaml:"input" json:"input"`
	Response string   `yaml:"response" json:"response"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// CorpusFile is the on-disk layout of a corpus file.
type CorpusFile struct {
	Interactions []Interaction `yaml:"interactions"`
}

// Match is the result of scoring a query against the index.
// Position is the interaction's place in the corpus, or -1 for no match.
type Match struct {
	Interaction Interaction
	Position    int
	Score       float64
}

// NoMatch is returned when there is nothing to match against.
var NoMatch = Match{Position: -1}

// Found reports whether m refers to a corpus interaction.
func (m Match) Found() bool {
	return m.Position >= 0
}

// IndexStats summarizes the state of an index
type IndexStats struct {
	Documents int  `json:"documents"`
	Terms     int  `json:"terms"`
	Stale     bool `json:"stale"`
}

// TermStat is one row of the document-frequency table
type TermStat struct {
	Term              string  `json:"term"`
	DocumentFrequency int     `json:"document_frequency"`
	IDF               float64 `json:"idf"`
}
