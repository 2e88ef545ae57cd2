package prompt

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens estimates how many tokens the text occupies, for request
// logging. Uses the cl100k_base encoding when available and falls back to a
// rough four-characters-per-token estimate when the encoding cannot be
// loaded (e.g. no network access to fetch the BPE ranks).
func CountTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}
