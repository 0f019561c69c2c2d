package engine

import "fmt"

// MaxCharacters bounds the character id space: ids are assigned as
// small unsigned integers in [0, MaxCharacters).
const MaxCharacters = 60

// UnknownCharacterError is returned when encoding a character that was
// never inserted into the codec.
type UnknownCharacterError struct {
	Rune rune
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("unknown character: %q", e.Rune)
}

// Codec is a bijection between a language's distinct characters and a
// compact integer id in [0, MaxCharacters). Ids are assigned in
// first-seen (insertion) order, so two codecs built from the same
// input sequence yield the same mapping.
type Codec struct {
	idOf  map[rune]uint8
	runes []rune
}

// NewCodec returns an empty codec.
func NewCodec() *Codec {
	return &Codec{idOf: make(map[rune]uint8, MaxCharacters)}
}

// Insert assigns r an id if it hasn't been seen before, and returns
// its id either way.
func (c *Codec) Insert(r rune) uint8 {
	if id, ok := c.idOf[r]; ok {
		return id
	}
	id := uint8(len(c.runes))
	c.idOf[r] = id
	c.runes = append(c.runes, r)
	return id
}

// Encode returns the id of a previously inserted character.
func (c *Codec) Encode(r rune) (uint8, error) {
	id, ok := c.idOf[r]
	if !ok {
		return 0, &UnknownCharacterError{Rune: r}
	}
	return id, nil
}

// EncodeMany encodes a sequence of characters, failing on the first
// unknown one.
func (c *Codec) EncodeMany(rs []rune) ([]uint8, error) {
	out := make([]uint8, len(rs))
	for i, r := range rs {
		id, err := c.Encode(r)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// Decode returns the character for id, and whether it is known.
func (c *Codec) Decode(id uint8) (rune, bool) {
	if int(id) >= len(c.runes) {
		return 0, false
	}
	return c.runes[id], true
}

// Len returns the number of distinct characters inserted so far.
func (c *Codec) Len() int {
	return len(c.runes)
}
