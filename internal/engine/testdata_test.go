package engine

import (
	mathrand "math/rand"
	"math/rand/v2"
)

// newTestRand builds the same seeded generator shape GenerateN uses
// per task, so a sequential call with the same seed is directly
// comparable to a parallel one.
func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// newStdRand builds a math/rand generator, the type eaopt's Genome
// interface expects (it predates math/rand/v2).
func newStdRand(seed int64) *mathrand.Rand {
	return mathrand.New(mathrand.NewSource(seed))
}

// testModel builds a small LanguageModel over the 30 lowercase QWERTY
// characters plus punctuation, with synthetic frequencies, for use
// across scorer/cache/optimizer/generator tests.
func testModel() *LanguageModel {
	letters := "qwertyuiopasdfghjkl;zxcvbnm,./"
	chars := make([]CharEntry, 0, len(letters))
	for i, r := range letters {
		chars = append(chars, CharEntry{Rune: r, Freq: 1.0 / float64(i+1)})
	}

	bigrams := map[string]float64{}
	skipgrams := map[string]float64{}
	skipgrams2 := map[string]float64{}
	skipgrams3 := map[string]float64{}
	for i := 0; i < len(letters)-1; i++ {
		bigrams[string([]rune{rune(letters[i]), rune(letters[i+1])})] = 0.01
	}
	for i := 0; i < len(letters)-2; i++ {
		skipgrams[string([]rune{rune(letters[i]), rune(letters[i+2])})] = 0.005
		skipgrams2[string([]rune{rune(letters[i]), rune(letters[i+2])})] = 0.004
	}
	for i := 0; i < len(letters)-3; i++ {
		skipgrams3[string([]rune{rune(letters[i]), rune(letters[i+3])})] = 0.003
	}

	var trigrams []TrigramEntry
	for i := 0; i < len(letters)-2; i++ {
		trigrams = append(trigrams, TrigramEntry{
			Key:  string([]rune{rune(letters[i]), rune(letters[i+1]), rune(letters[i+2])}),
			Freq: 1.0 / float64(i+1),
		})
	}

	model, err := BuildLanguageModel("test", chars, bigrams, skipgrams, skipgrams2, skipgrams3, trigrams)
	if err != nil {
		panic(err)
	}
	return model
}

func testAlphabet() [NumPositions]rune {
	var out [NumPositions]rune
	for i, r := range "qwertyuiopasdfghjkl;zxcvbnm,./" {
		out[i] = r
	}
	return out
}
