package tokenizer

import "fmt"

// Byte maps each byte of the input to its own token. Vocab size is 256.
type Byte struct{}

// NewByte returns a byte-level tokenizer.
func NewByte() Byte { return Byte{} }

// Encode converts a string to token ids.
func (Byte) Encode(text string) ([]int32, error) {
	tokens := make([]int32, len(text))
	for i := 0; i < len(text); i++ {
		tokens[i] = int32(text[i])
	}
	return tokens, nil
}

// Decode converts token ids back to a string.
func (Byte) Decode(tokens []int32) (string, error) {
	out := make([]byte, len(tokens))
	for i, token := range tokens {
		if token < 0 || token > 255 {
			return "", fmt.Errorf("token %d is not a byte", token)
		}
		out[i] = byte(token)
	}
	return string(out), nil
}

// VocabSize returns 256.
func (Byte) VocabSize() int { return 256 }
