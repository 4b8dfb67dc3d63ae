package knowledge

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrEmptyInput is returned when a learned interaction lacks input or response
var ErrEmptyInput = errors.New("input and response are required")

// Learner adds interactions to a live index and, when it has a loader,
// persists them to the corpus.
type Learner struct {
	idx     *Index
	loader  *Loader
	rebuild bool
	mu      sync.Mutex
}

// NewLearner creates a learner. A nil loader keeps learned interactions in
// memory only. With rebuild set, every learned interaction triggers a full
// CalculateTFIDF so older vectors pick up the new document frequencies.
func NewLearner(idx *Index, loader *Loader, rebuild bool) *Learner {
	return &Learner{idx: idx, loader: loader, rebuild: rebuild}
}

// Learn stores a new interaction and returns it with its index position.
// The corpus file is written before the index changes, so a failed write
// leaves the index untouched.
func (l *Learner) Learn(input, response string, tags ...string) (Interaction, int, error) {
	input = strings.TrimSpace(input)
	response = strings.TrimSpace(response)
	if input == "" || response == "" {
		return Interaction{}, -1, ErrEmptyInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	in := Interaction{
		ID:       l.uniqueID(input),
		Input:    input,
		Response: response,
		Tags:     tags,
	}

	if l.loader != nil {
		if err := l.loader.Append(l.loader.WritePath(), in); err != nil {
			return Interaction{}, -1, fmt.Errorf("failed to persist interaction: %w", err)
		}
	}

	pos := l.idx.UpdateTFIDFForNewInteraction(in)
	if l.rebuild {
		l.idx.CalculateTFIDF(l.idx.GetAll())
	}
	return in, pos, nil
}

// Rebuild replaces the indexed corpus. It is serialized with Learn so a
// reload from disk cannot interleave with a learn in progress.
func (l *Learner) Rebuild(corpus []Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.idx.CalculateTFIDF(corpus)
}

func (l *Learner) uniqueID(input string) string {
	base := InteractionID(input)
	id := base
	for n := 2; ; n++ {
		if _, taken := l.idx.GetByID(id); !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}
