package tokenizer

import "fmt"

// trie is a byte trie mapping token byte strings to ids.
type trie struct {
	children map[byte]*trie
	id       int32
	end      bool
}

// newTrie creates a trie holding every entry of table.
func newTrie(table []string) (*trie, error) {
	t := &trie{children: map[byte]*trie{}}
	for i, word := range table {
		if err := t.Insert([]byte(word), int32(i)); err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
	}
	return t, nil
}

// Insert inserts a word into the trie.
func (t *trie) Insert(word []byte, id int32) error {
	if len(word) == 0 {
		return fmt.Errorf("zero length word not supported")
	}
	cur := t
	for _, b := range word {
		if cur.children[b] == nil {
			cur.children[b] = &trie{children: map[byte]*trie{}}
		}
		cur = cur.children[b]
	}
	// first entry wins for duplicated byte strings
	if !cur.end {
		cur.end = true
		cur.id = id
	}
	return nil
}

// Tokenize splits input by greedy longest match. A byte that starts no
// entry is emitted alone with the fallback id.
func (t *trie) Tokenize(input []byte, fallback int32) []int32 {
	cur := t
	token := fallback
	endIdx, next := 1, 0
	tokens := make([]int32, 0, len(input))
	for len(input) != 0 {
		switch {
		case next == len(input), cur.children[input[next]] == nil:
			tokens = append(tokens, token)
			input = input[endIdx:]
			token = fallback
			cur = t
			next = 0
			endIdx = 1
		default:
			cur = cur.children[input[next]]
			next++
			if cur.end {
				endIdx = next
				token = cur.id
			}
		}
	}
	return tokens
}
