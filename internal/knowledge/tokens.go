package knowledge

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts tokens in response text
type TokenCounter struct {
	encoder *tiktoken.Tiktoken
}

var (
	counterOnce   sync.Once
	sharedCounter *TokenCounter
	counterErr    error
)

// NewTokenCounter returns a counter using the cl100k_base encoding. The
// encoding is loaded once per process. On error the returned counter is
// still usable and approximates.
func NewTokenCounter() (*TokenCounter, error) {
	counterOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		sharedCounter = &TokenCounter{encoder: enc}
		counterErr = err
	})
	return sharedCounter, counterErr
}

// CountTokens counts the number of tokens in the given text.
// Falls back to character/4 when the encoder is unavailable.
func (tc *TokenCounter) CountTokens(text string) int {
	if tc == nil || tc.encoder == nil {
		return len(text) / 4
	}
	return len(tc.encoder.Encode(text, nil, nil))
}
