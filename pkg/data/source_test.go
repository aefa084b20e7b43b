package data

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runeEncoder struct{}

func (runeEncoder) Encode(text string) ([]int32, error) {
	tokens := make([]int32, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, r)
	}
	return tokens, nil
}

type failingEncoder struct{}

func (failingEncoder) Encode(string) ([]int32, error) { return nil, errors.New("bad vocab") }

func TestFromText(t *testing.T) {
	tokens, err := FromText(strings.NewReader("abc"), "inline", runeEncoder{})
	require.NoError(t, err)
	assert.Equal(t, []int32{'a', 'b', 'c'}, tokens)

	_, err = FromText(iotest.ErrReader(errors.New("disk gone")), "inline", runeEncoder{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorContains(t, err, "disk gone")

	_, err = FromText(strings.NewReader("abc"), "inline", failingEncoder{})
	assert.ErrorContains(t, err, "bad vocab")
	assert.NotErrorIs(t, err, ErrSourceUnavailable)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	tokens, err := FromFile(path, runeEncoder{})
	require.NoError(t, err)
	assert.Len(t, tokens, 5)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"), runeEncoder{})
	var unavailable *SourceUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, unavailable.Source, "missing.txt")
}

func TestFromBinary(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []int32{5, 50256, 0, 17}))
	path := filepath.Join(dir, "train.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	tokens, err := FromBinary(path)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 50256, 0, 17}, tokens)

	torn := filepath.Join(dir, "torn.bin")
	require.NoError(t, os.WriteFile(torn, buf.Bytes()[:6], 0o644))
	_, err = FromBinary(torn)
	assert.ErrorContains(t, err, "not a multiple")

	_, err = FromBinary(filepath.Join(dir, "nope.bin"))
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSplit(t *testing.T) {
	train, val, err := Split(seq(10), 0.2)
	require.NoError(t, err)
	assert.Equal(t, seq(8), train)
	assert.Equal(t, []int32{8, 9}, val)

	train, val, err = Split(seq(10), 0)
	require.NoError(t, err)
	assert.Len(t, train, 10)
	assert.Empty(t, val)

	for _, bad := range []float64{-0.1, 1, 1.5} {
		_, _, err := Split(seq(10), bad)
		assert.Error(t, err)
	}
}
