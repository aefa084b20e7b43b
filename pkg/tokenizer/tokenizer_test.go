package tokenizer

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vocab = []string{"a", "b", "ab", "abc", " ", "c", "<|endoftext|>", "'s"}

func tableBin(t *testing.T, version uint32, eot uint32, table []string) []byte {
	t.Helper()
	header := make([]uint32, headerLen)
	header[0], header[1], header[2], header[3] = tableMagic, version, uint32(len(table)), eot
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, header))
	for _, tok := range table {
		buf.WriteByte(byte(len(tok)))
		buf.WriteString(tok)
	}
	return buf.Bytes()
}

func TestTableEncode(t *testing.T) {
	tok, err := NewTable(vocab, 6)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []int32
	}{
		{"longest match", "abcab", []int32{3, 2}},
		{"leading space piece", "abcab c", []int32{3, 2, 4, 5}},
		{"contraction split", "a's", []int32{0, 7}},
		{"unknown byte", "z", []int32{6}},
		{"empty", "", []int32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Encode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableDecode(t *testing.T) {
	tok, err := NewTable(vocab, 6)
	require.NoError(t, err)
	text, err := tok.Decode([]int32{3, 2, 6, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, "abcab c", text)

	_, err = tok.Decode([]int32{8})
	assert.Error(t, err)
	_, err = tok.Decode([]int32{-1})
	assert.Error(t, err)
	assert.Equal(t, len(vocab), tok.VocabSize())
	assert.Equal(t, int32(6), tok.EOT())
}

func TestNewTableRejectsEmptyToken(t *testing.T) {
	_, err := NewTable([]string{"a", ""}, 0)
	assert.Error(t, err)
}

func TestReadTable(t *testing.T) {
	t.Run("version 1 uses GPT-2 EOT", func(t *testing.T) {
		tok, err := ReadTable(bytes.NewReader(tableBin(t, 1, 0, vocab)))
		require.NoError(t, err)
		assert.Equal(t, GPT2EOT, tok.EOT())
		assert.Equal(t, len(vocab), tok.VocabSize())
	})
	t.Run("version 2 carries EOT", func(t *testing.T) {
		tok, err := ReadTable(bytes.NewReader(tableBin(t, 2, 6, vocab)))
		require.NoError(t, err)
		assert.Equal(t, int32(6), tok.EOT())
		ids, err := tok.Encode("ab c")
		require.NoError(t, err)
		assert.Equal(t, []int32{2, 4, 5}, ids)
	})
	t.Run("bad magic", func(t *testing.T) {
		raw := tableBin(t, 1, 0, vocab)
		raw[0] = 0
		_, err := ReadTable(bytes.NewReader(raw))
		assert.ErrorContains(t, err, "incorrect header")
	})
	t.Run("bad version", func(t *testing.T) {
		_, err := ReadTable(bytes.NewReader(tableBin(t, 9, 0, vocab)))
		assert.ErrorContains(t, err, "version")
	})
	t.Run("truncated", func(t *testing.T) {
		raw := tableBin(t, 1, 0, vocab)
		_, err := ReadTable(bytes.NewReader(raw[:len(raw)-2]))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	tok, err := Load("byte")
	require.NoError(t, err)
	assert.Equal(t, 256, tok.VocabSize())

	path := filepath.Join(t.TempDir(), "tokenizer.bin")
	require.NoError(t, os.WriteFile(path, tableBin(t, 2, 6, vocab), 0o644))
	tok, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(vocab), tok.VocabSize())

	_, err = Load(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
	_, err = Load("")
	assert.Error(t, err)
}

func TestByte(t *testing.T) {
	tok := NewByte()
	ids, err := tok.Encode("hé")
	require.NoError(t, err)
	assert.Equal(t, []int32{'h', 0xc3, 0xa9}, ids)
	text, err := tok.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "hé", text)
	_, err = tok.Decode([]int32{256})
	assert.Error(t, err)
}

func TestResolveEncoding(t *testing.T) {
	name, ok := resolveEncoding("gpt2")
	assert.True(t, ok)
	assert.Equal(t, "r50k_base", name)
	name, ok = resolveEncoding("cl100k_base")
	assert.True(t, ok)
	assert.Equal(t, "cl100k_base", name)
	assert.False(t, isTiktokenEncoding("tokenizer.bin"))
}

func TestNewTiktokenUnknown(t *testing.T) {
	_, err := NewTiktoken("not-an-encoding")
	assert.ErrorContains(t, err, "unknown tiktoken encoding")
}
