package utils

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

var encoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding("cl100k_base")
})

// CountTokens counts cl100k tokens in text. When the encoding cannot be
// loaded it falls back to EstimateTokens.
func CountTokens(text string) int {
	tkm, err := encoding()
	if err != nil {
		return EstimateTokens(text)
	}
	return len(tkm.Encode(text, nil, nil))
}

// EstimateTokens approximates a token count at four runes per token.
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}
