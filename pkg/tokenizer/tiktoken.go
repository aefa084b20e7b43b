package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

var tiktokenVocab = map[string]int{
	"r50k_base":   50257,
	"p50k_base":   50281,
	"cl100k_base": 100277,
}

// gpt2 shares ranks and split pattern with r50k_base.
var tiktokenAliases = map[string]string{
	"gpt2": "r50k_base",
}

func resolveEncoding(name string) (string, bool) {
	if alias, ok := tiktokenAliases[name]; ok {
		name = alias
	}
	_, ok := tiktokenVocab[name]
	return name, ok
}

func isTiktokenEncoding(name string) bool {
	_, ok := resolveEncoding(name)
	return ok
}

// Tiktoken wraps a tiktoken BPE encoding.
//
// The first use of an encoding downloads its ranks unless TIKTOKEN_CACHE_DIR
// already holds them.
type Tiktoken struct {
	name  string
	vocab int
	bpe   *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding.
func NewTiktoken(name string) (*Tiktoken, error) {
	encoding, ok := resolveEncoding(name)
	if !ok {
		return nil, fmt.Errorf("unknown tiktoken encoding %q", name)
	}
	vocab := tiktokenVocab[encoding]
	bpe, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", name, err)
	}
	return &Tiktoken{name: name, vocab: vocab, bpe: bpe}, nil
}

// Encode encodes text without special tokens.
func (t *Tiktoken) Encode(text string) ([]int32, error) {
	raw := t.bpe.EncodeOrdinary(text)
	tokens := make([]int32, len(raw))
	for i, id := range raw {
		tokens[i] = int32(id)
	}
	return tokens, nil
}

// Decode decodes token ids back to text.
func (t *Tiktoken) Decode(tokens []int32) (string, error) {
	raw := make([]int, len(tokens))
	for i, token := range tokens {
		if token < 0 || int(token) >= t.vocab {
			return "", fmt.Errorf("token %d outside %s vocabulary", token, t.name)
		}
		raw[i] = int(token)
	}
	return t.bpe.Decode(raw), nil
}

// VocabSize returns the size of the encoding's vocabulary.
func (t *Tiktoken) VocabSize() int { return t.vocab }
