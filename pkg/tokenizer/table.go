package tokenizer

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	tableMagic = 20240328
	headerLen  = 256
)

// gpt2Pattern is the GPT-2 pre-tokenization split. The trailing-whitespace
// lookahead is why this needs regexp2 rather than regexp.
var gpt2Pattern = regexp2.MustCompile(
	`'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`,
	regexp2.None,
)

// Table is a lookup-table tokenizer in the llm.c tokenizer.bin layout.
type Table struct {
	eot        int32
	tokenTable []string
	trie       *trie
}

// NewTable builds a Table from an ordered token table; id i decodes to table[i].
func NewTable(table []string, eot int32) (*Table, error) {
	t, err := newTrie(table)
	if err != nil {
		return nil, err
	}
	return &Table{
		eot:        eot,
		tokenTable: append([]string(nil), table...),
		trie:       t,
	}, nil
}

// LoadTable reads an llm.c tokenizer.bin file.
func LoadTable(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f)
}

// ReadTable decodes a tokenizer.bin stream: a 256 x uint32 header
// (magic, version, vocab size, EOT for version 2) followed by one
// length-prefixed byte string per token.
func ReadTable(r io.Reader) (*Table, error) {
	header := make([]uint32, headerLen)
	if err := binary.Read(r, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("reading tokenizer header: %w", err)
	}
	if header[0] != tableMagic {
		return nil, fmt.Errorf("incorrect header for tokenizer")
	}
	eot := GPT2EOT
	switch header[1] {
	case 1:
	case 2:
		eot = int32(header[3])
	default:
		return nil, fmt.Errorf("unsupported tokenizer version %d", header[1])
	}
	table := make([]string, header[2])
	var length byte
	for i := range table {
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("reading token %d: %w", i, err)
		}
		if length == 0 {
			return nil, fmt.Errorf("token %d has zero length", i)
		}
		tokenBytes := make([]byte, length)
		if _, err := io.ReadFull(r, tokenBytes); err != nil {
			return nil, fmt.Errorf("reading token %d: %w", i, err)
		}
		table[i] = string(tokenBytes)
	}
	return NewTable(table, eot)
}

// Encode encodes a string into a sequence of tokens.
func (t *Table) Encode(text string) ([]int32, error) {
	tokens := make([]int32, 0, len(text))
	m, err := gpt2Pattern.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = gpt2Pattern.FindNextMatch(m) {
		tokens = append(tokens, t.trie.Tokenize([]byte(m.String()), t.eot)...)
	}
	if err != nil {
		return nil, fmt.Errorf("splitting text: %w", err)
	}
	return tokens, nil
}

// Decode decodes a sequence of tokens into a string. EOT tokens are dropped.
func (t *Table) Decode(tokens []int32) (string, error) {
	var sb strings.Builder
	for _, token := range tokens {
		if token < 0 || token >= int32(len(t.tokenTable)) {
			return "", fmt.Errorf("token %d outside vocabulary of %d", token, len(t.tokenTable))
		}
		if token != t.eot {
			sb.WriteString(t.tokenTable[token])
		}
	}
	return sb.String(), nil
}

// VocabSize returns the number of entries in the table.
func (t *Table) VocabSize() int { return len(t.tokenTable) }

// EOT returns the end-of-text id.
func (t *Table) EOT() int32 { return t.eot }
