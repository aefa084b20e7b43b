// Package tokenizer converts text to token ids and back.
package tokenizer

import "fmt"

// GPT2EOT is the GPT-2 end-of-text token id.
const GPT2EOT int32 = 50256

// Tokenizer is an interface for tokenizing text.
type Tokenizer interface {
	Decode(tokens []int32) (string, error)
	Encode(text string) ([]int32, error)
	VocabSize() int
}

// Load resolves a tokenizer by name: "byte", a tiktoken encoding such as
// "gpt2", or otherwise the path of an llm.c tokenizer.bin file.
func Load(name string) (Tokenizer, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("tokenizer name is required")
	case name == "byte":
		return NewByte(), nil
	case isTiktokenEncoding(name):
		return NewTiktoken(name)
	default:
		return LoadTable(name)
	}
}
