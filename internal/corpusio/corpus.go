// Package corpusio implements the external file-format collaborators:
// the JSON corpus loader and the plain-text .kb layout file reader
// and writer.
package corpusio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kbfrost/layoutforge/internal/engine"
)

// orderedEntry is one key/value pair from a JSON object, in document
// order. encoding/json's map decoding loses key order, but the
// character and trigram fields need it preserved (it seeds the
// codec's id assignment and carries the trigram list's frequency
// ranking), so those two fields are decoded with a token-stream walk
// instead of straight into a map.
type orderedEntry struct {
	Key string
	Val float64
}

func decodeOrderedObject(dec *json.Decoder) ([]orderedEntry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var out []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, orderedEntry{Key: key, Val: v})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return out, nil
}

// corpusDoc is the JSON corpus document, decoded with character and
// trigram order preserved.
type corpusDoc struct {
	Language   string
	Characters []orderedEntry
	Bigrams    map[string]float64
	Skipgrams  map[string]float64
	Skipgrams2 map[string]float64
	Skipgrams3 map[string]float64
	Trigrams   []orderedEntry
}

func (d *corpusDoc) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected top-level object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		switch key {
		case "language":
			if err := dec.Decode(&d.Language); err != nil {
				return err
			}
		case "characters":
			d.Characters, err = decodeOrderedObject(dec)
		case "trigrams":
			d.Trigrams, err = decodeOrderedObject(dec)
		case "bigrams":
			err = dec.Decode(&d.Bigrams)
		case "skipgrams":
			err = dec.Decode(&d.Skipgrams)
		case "skipgrams2":
			err = dec.Decode(&d.Skipgrams2)
		case "skipgrams3":
			err = dec.Decode(&d.Skipgrams3)
		default:
			var skip json.RawMessage
			err = dec.Decode(&skip)
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// LoadCorpus parses a language's JSON corpus file and builds its
// LanguageModel.
func LoadCorpus(path string) (*engine.LanguageModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	defer engine.CloseFile(f)

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}

	var doc corpusDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	chars := make([]engine.CharEntry, 0, len(doc.Characters))
	for _, e := range doc.Characters {
		rs := []rune(e.Key)
		if len(rs) != 1 {
			return nil, fmt.Errorf("parse corpus %s: character key %q is not a single rune", path, e.Key)
		}
		chars = append(chars, engine.CharEntry{Rune: rs[0], Freq: e.Val})
	}
	trigrams := make([]engine.TrigramEntry, 0, len(doc.Trigrams))
	for _, e := range doc.Trigrams {
		trigrams = append(trigrams, engine.TrigramEntry{Key: e.Key, Freq: e.Val})
	}

	model, err := engine.BuildLanguageModel(doc.Language, chars, doc.Bigrams, doc.Skipgrams, doc.Skipgrams2, doc.Skipgrams3, trigrams)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return model, nil
}
