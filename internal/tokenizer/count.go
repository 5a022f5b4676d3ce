package tokenizer

import (
	"errors"
)

// CountResult captures the outcome of counting a document.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountDocument estimates tokens for document using counter.
// A nil counter yields an uncounted result rather than an error so callers can leave counting disabled.
func CountDocument(counter Counter, document string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, nil
	}
	tokens, err := counter.CountString(document)
	if err != nil {
		return CountResult{}, err
	}
	if tokens < 0 {
		return CountResult{}, errors.New("negative token count")
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
