package engine

import "fmt"

// CharEntry is one character/frequency pair from a corpus document, in
// the order it appeared in the source document.
type CharEntry struct {
	Rune rune
	Freq float64
}

// TrigramEntry is one trigram/frequency pair, in corpus order
// (expected descending by frequency).
type TrigramEntry struct {
	Key  string
	Freq float64
}

// TrigramFreq is a trigram translated into the codec's id space.
type TrigramFreq struct {
	IDs  [3]uint8
	Freq float64
}

// LanguageModel holds frequency tables for unigrams, bigrams, three
// skipgram orders, and an ordered trigram list, all over the codec's
// id space.
type LanguageModel struct {
	Language string
	Codec    *Codec

	CharFreq []float64

	Bigrams    map[[2]uint8]float64
	Skipgrams  map[[2]uint8]float64
	Skipgrams2 map[[2]uint8]float64
	Skipgrams3 map[[2]uint8]float64

	Trigrams []TrigramFreq
}

// Freq returns the unigram frequency of id, or 0 if out of range.
func (m *LanguageModel) Freq(id uint8) float64 {
	if int(id) < len(m.CharFreq) {
		return m.CharFreq[id]
	}
	return 0
}

func bigramKeyToIDs(codec *Codec, key string) ([2]uint8, bool, error) {
	rs := []rune(key)
	if len(rs) != 2 {
		return [2]uint8{}, false, nil
	}
	ids, err := codec.EncodeMany(rs)
	if err != nil {
		return [2]uint8{}, false, err
	}
	return [2]uint8{ids[0], ids[1]}, true, nil
}

func buildBigramMap(codec *Codec, src map[string]float64) (map[[2]uint8]float64, error) {
	out := make(map[[2]uint8]float64, len(src))
	for key, freq := range src {
		ids, ok, err := bigramKeyToIDs(codec, key)
		if err != nil {
			return nil, fmt.Errorf("bigram %q: %w", key, err)
		}
		if !ok {
			continue
		}
		out[ids] = freq
	}
	return out, nil
}

// BuildLanguageModel constructs a LanguageModel from document-order
// character entries and the n-gram maps, seeding a fresh Codec from
// the character entries' order. Trigrams whose first two or last two
// ids are equal are discarded, matching the upstream corpus generator.
func BuildLanguageModel(language string, characters []CharEntry, bigrams, skipgrams, skipgrams2, skipgrams3 map[string]float64, trigrams []TrigramEntry) (*LanguageModel, error) {
	codec := NewCodec()
	charFreq := make([]float64, 0, len(characters))
	for _, e := range characters {
		id := codec.Insert(e.Rune)
		if int(id) != len(charFreq) {
			// Duplicate character in the source document; keep the
			// first frequency seen and ignore the repeat.
			continue
		}
		charFreq = append(charFreq, e.Freq)
	}
	if codec.Len() > MaxCharacters {
		return nil, fmt.Errorf("language %s has %d distinct characters, at most %d are supported", language, codec.Len(), MaxCharacters)
	}

	bg, err := buildBigramMap(codec, bigrams)
	if err != nil {
		return nil, err
	}
	sg, err := buildBigramMap(codec, skipgrams)
	if err != nil {
		return nil, err
	}
	sg2, err := buildBigramMap(codec, skipgrams2)
	if err != nil {
		return nil, err
	}
	sg3, err := buildBigramMap(codec, skipgrams3)
	if err != nil {
		return nil, err
	}

	tris := make([]TrigramFreq, 0, len(trigrams))
	for _, e := range trigrams {
		rs := []rune(e.Key)
		if len(rs) != 3 {
			continue
		}
		ids, err := codec.EncodeMany(rs)
		if err != nil {
			return nil, fmt.Errorf("trigram %q: %w", e.Key, err)
		}
		if ids[0] == ids[1] || ids[1] == ids[2] {
			continue
		}
		tris = append(tris, TrigramFreq{IDs: [3]uint8{ids[0], ids[1], ids[2]}, Freq: e.Freq})
	}

	return &LanguageModel{
		Language:   language,
		Codec:      codec,
		CharFreq:   charFreq,
		Bigrams:    bg,
		Skipgrams:  sg,
		Skipgrams2: sg2,
		Skipgrams3: sg3,
		Trigrams:   tris,
	}, nil
}
