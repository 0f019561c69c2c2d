// Command layoutforge is an interactive keyboard-layout optimizer: it
// loads a language's corpus and named layouts, then serves a small
// REPL for ranking, analyzing, comparing, generating, and saving
// layouts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/kbfrost/layoutforge/internal/config"
	"github.com/kbfrost/layoutforge/internal/corpusio"
	"github.com/kbfrost/layoutforge/internal/engine"
	"github.com/kbfrost/layoutforge/internal/tui"
)

func main() {
	corpusDir := flag.String("corpus-dir", "language_data", "directory of <language>.json corpus files")
	layoutsDir := flag.String("layouts-dir", "layouts", "directory of per-language layouts/<language>/*.kb files")
	weightsFile := flag.String("weights", "weights.toml", "path to the weights.toml configuration file")
	flag.Parse()

	w, err := config.Load(*weightsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sess, err := newSession(*corpusDir, *layoutsDir, w)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := sess.loadLanguage(w.Language); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	repl(sess)
}

// session holds the process-wide state: the configured weights, the
// current language's model/registry/scorer, and the most recent
// generate batch awaiting save. It is mutated only from the REPL's
// single goroutine.
type session struct {
	corpusDir  string
	layoutsDir string
	weights    *engine.Weights
	language   string
	model      *engine.LanguageModel
	scorer     *engine.Scorer
	registry   *engine.Registry
	lastBatch  []*engine.Layout
}

func newSession(corpusDir, layoutsDir string, w *engine.Weights) (*session, error) {
	return &session{corpusDir: corpusDir, layoutsDir: layoutsDir, weights: w}, nil
}

func (s *session) loadLanguage(language string) error {
	model, err := corpusio.LoadCorpus(filepath.Join(s.corpusDir, language+".json"))
	if err != nil {
		return err
	}
	dir := filepath.Join(s.layoutsDir, language)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("language %s: %w", language, err)
	}
	registry, loadErrs := engine.LoadRegistry(context.Background(), dir, model, s.weights, corpusio.ReadLayout)
	for _, e := range loadErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	s.language = language
	s.model = model
	s.scorer = registry.Scorer
	s.registry = registry
	s.lastBatch = nil
	return nil
}

func repl(s *session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("layoutforge - keyboard layout optimizer")
	fmt.Println("type a command, or 'quit' to exit")
	fmt.Println()

	for {
		input, err := line.Prompt(s.language + "> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
			}
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if err := dispatch(s, input); err != nil {
			if err == errQuit {
				break
			}
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Println()
	}
}

var errQuit = fmt.Errorf("quit")

func dispatch(s *session, input string) error {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "rank", "r":
		return cmdRank(s)
	case "analyze", "a":
		return cmdAnalyze(s, args)
	case "compare", "c":
		return cmdCompare(s, args)
	case "generate", "g":
		return cmdGenerate(s, args)
	case "improve", "i":
		return cmdImprove(s, args)
	case "anneal":
		return cmdAnneal(s, args)
	case "save":
		return cmdSave(s, args)
	case "language", "l":
		return cmdLanguage(s, args)
	case "quit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdRank(s *session) error {
	names := s.registry.Rank()
	entries := make([]tui.RankEntry, len(names))
	for i, name := range names {
		entries[i] = tui.RankEntry{Index: i + 1, Name: name, Layout: s.registry.Get(name)}
	}
	fmt.Println(tui.RenderRank(entries))
	return nil
}

func cmdAnalyze(s *session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: analyze <name>")
	}
	layout := s.registry.Get(args[0])
	if layout == nil {
		return fmt.Errorf("unknown layout %q", args[0])
	}
	stats := s.scorer.ScoreStats(layout)
	fmt.Println(tui.RenderHeatmap(layout, s.scorer))
	fmt.Println(tui.RenderAnalyze(args[0], layout, stats))
	return nil
}

func cmdCompare(s *session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: compare <name1> <name2>")
	}
	a := s.registry.Get(args[0])
	if a == nil {
		return fmt.Errorf("unknown layout %q", args[0])
	}
	b := s.registry.Get(args[1])
	if b == nil {
		return fmt.Errorf("unknown layout %q", args[1])
	}
	fmt.Println(tui.RenderCompare(args[0], s.scorer.ScoreStats(a), args[1], s.scorer.ScoreStats(b)))
	return nil
}

func cmdGenerate(s *session, args []string) error {
	n, err := parseCount(args)
	if err != nil {
		return err
	}
	alphabet, err := alphabetFromModel(s.model)
	if err != nil {
		return err
	}
	seeds := seedsFor(n)
	results, err := engine.GenerateN(context.Background(), n, s.scorer, alphabet, seeds, progressPrinter(n))
	if err != nil {
		return err
	}
	s.lastBatch = results
	printBatch(results)
	return nil
}

func cmdImprove(s *session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: improve <name> <N> [pins...]")
	}
	template := s.registry.Get(args[0])
	if template == nil {
		return fmt.Errorf("unknown layout %q", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return fmt.Errorf("improve: invalid count %q", args[1])
	}
	pinned := map[int]bool{}
	for _, tok := range args[2:] {
		pos, err := strconv.Atoi(tok)
		if err != nil || !engine.ValidPos(pos) {
			return fmt.Errorf("improve: invalid pin %q", tok)
		}
		pinned[pos] = true
	}
	seeds := seedsFor(n)
	results, err := engine.GenerateNPins(context.Background(), n, s.scorer, template, pinned, seeds, progressPrinter(n))
	if err != nil {
		return err
	}
	s.lastBatch = results
	printBatch(results)
	return nil
}

func cmdAnneal(s *session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: anneal <name> <generations> [pins...]")
	}
	template := s.registry.Get(args[0])
	if template == nil {
		return fmt.Errorf("unknown layout %q", args[0])
	}
	generations, err := strconv.Atoi(args[1])
	if err != nil || generations <= 0 {
		return fmt.Errorf("anneal: invalid generation count %q", args[1])
	}
	pinned := map[int]bool{}
	for _, tok := range args[2:] {
		pos, err := strconv.Atoi(tok)
		if err != nil || !engine.ValidPos(pos) {
			return fmt.Errorf("anneal: invalid pin %q", tok)
		}
		pinned[pos] = true
	}
	result, err := engine.Anneal(template, s.scorer, pinned, uint(generations), "linear")
	if err != nil {
		return err
	}
	s.lastBatch = []*engine.Layout{result}
	printBatch(s.lastBatch)
	return nil
}

func cmdSave(s *session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: save <index> [name]")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(s.lastBatch) {
		return fmt.Errorf("save: invalid index %q", args[0])
	}
	name := ""
	if len(args) > 1 {
		name = args[1]
	}
	used, err := s.registry.Save(s.lastBatch[idx-1], name, corpusio.WriteLayout)
	if err != nil {
		return err
	}
	fmt.Printf("saved as %s\n", used)
	return nil
}

func cmdLanguage(s *session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: language <name>")
	}
	return s.loadLanguage(args[0])
}

func parseCount(args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: generate <N>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("generate: invalid count %q", args[0])
	}
	return n, nil
}

func alphabetFromModel(model *engine.LanguageModel) ([engine.NumPositions]rune, error) {
	var out [engine.NumPositions]rune
	if model.Codec.Len() < engine.NumPositions {
		return out, fmt.Errorf("language %s has only %d characters, need %d", model.Language, model.Codec.Len(), engine.NumPositions)
	}
	for i := 0; i < engine.NumPositions; i++ {
		r, _ := model.Codec.Decode(uint8(i))
		out[i] = r
	}
	return out, nil
}

func seedsFor(n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = uint64(i)*0x9E3779B97F4A7C15 + 1
	}
	return seeds
}

func progressPrinter(total int) engine.Progress {
	return func(done, n int) {
		if done == n || done%max(1, n/10) == 0 {
			fmt.Printf("\r%d/%d", done, n)
		}
	}
}

func printBatch(results []*engine.Layout) {
	top := results
	if len(top) > 10 {
		top = top[:10]
	}
	for i, l := range top {
		fmt.Printf("%d) score %+.3f\n%s\n\n", i+1, l.Score, l.Render())
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
