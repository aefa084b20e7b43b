package data

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Int32ByteLen is the on-disk width of one token in a binary token file.
const Int32ByteLen = 4

// Encoder turns raw text into token ids.
type Encoder interface {
	Encode(text string) ([]int32, error)
}

// FromText reads r once and encodes the whole text with enc.
// source names r in errors.
func FromText(r io.Reader, source string, enc Encoder) ([]int32, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceUnavailableError{Source: source, Err: err}
	}
	tokens, err := enc.Encode(string(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", source, err)
	}
	return tokens, nil
}

// FromFile encodes the text file at path with enc.
func FromFile(path string, enc Encoder) ([]int32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Source: path, Err: err}
	}
	defer file.Close()
	return FromText(file, path, enc)
}

// FromBinary reads a file of little-endian int32 token ids.
func FromBinary(path string) ([]int32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceUnavailableError{Source: path, Err: err}
	}
	if len(raw)%Int32ByteLen != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of %d", path, len(raw), Int32ByteLen)
	}
	tokens := make([]int32, len(raw)/Int32ByteLen)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, tokens); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return tokens, nil
}

// Split cuts tokens into a training head and a validation tail holding
// valFraction of the stream. Order is preserved.
func Split(tokens []int32, valFraction float64) (train, val []int32, err error) {
	if valFraction < 0 || valFraction >= 1 {
		return nil, nil, fmt.Errorf("validation fraction must be in [0, 1), got %v", valFraction)
	}
	cut := len(tokens) - int(float64(len(tokens))*valFraction)
	return tokens[:cut], tokens[cut:], nil
}
