package spell

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/sajari/fuzzy"

	"codeview/internal/eventbus"
)

// MaxSuggestions caps how many corrections Suggest returns.
const MaxSuggestions = 10

//go:embed dictionary.txt
var baseDictionary string

// Checker decides whether words are spelled correctly and offers
// corrections. Word membership is tracked in an exact set; the fuzzy model
// is the suggestion engine. User-dictionary additions and session ignores
// layer on top of the trained dictionary.
type Checker struct {
	mu      sync.RWMutex
	model   *fuzzy.Model
	words   map[string]struct{}
	user    map[string]struct{}
	ignored map[string]struct{}
	bus     eventbus.EventBus
}

// NewChecker creates a checker trained on the embedded base dictionary.
func NewChecker(bus eventbus.EventBus) *Checker {
	c := newEmptyChecker(bus)
	n := c.train(strings.Split(baseDictionary, "\n"))
	log.Printf("Spell checker trained with %d base words", n)
	if bus != nil {
		bus.Publish(eventbus.DictionaryLoadedEvent{Words: n})
	}
	return c
}

// NewCheckerFromWords creates a checker trained on exactly the given words.
func NewCheckerFromWords(words []string, bus eventbus.EventBus) *Checker {
	c := newEmptyChecker(bus)
	c.train(words)
	return c
}

func newEmptyChecker(bus eventbus.EventBus) *Checker {
	model := fuzzy.NewModel()
	model.SetDepth(2)
	return &Checker{
		model:   model,
		words:   make(map[string]struct{}),
		user:    make(map[string]struct{}),
		ignored: make(map[string]struct{}),
		bus:     bus,
	}
}

// LoadDictionary trains additional words from a newline-separated file.
func (c *Checker) LoadDictionary(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}
	n := c.train(strings.Split(string(data), "\n"))
	log.Printf("Loaded %d words from dictionary %s", n, path)
	if c.bus != nil {
		c.bus.Publish(eventbus.DictionaryLoadedEvent{Path: path, Words: n})
	}
	return nil
}

func (c *Checker) train(words []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		c.words[w] = struct{}{}
		c.model.TrainWord(w)
		n++
	}
	return n
}

// CheckWord reports whether word is considered correctly spelled. Tokens
// that are not worth checking (single letters, acronyms, anything with a
// digit) always pass.
func (c *Checker) CheckWord(word string) bool {
	runes := []rune(word)
	if len(runes) <= 1 {
		return true
	}
	hasLower := false
	for _, r := range runes {
		if unicode.IsDigit(r) {
			return true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasLower {
		// All-caps tokens are treated as acronyms.
		return true
	}

	lower := strings.ToLower(word)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.ignored[lower]; ok {
		return true
	}
	if _, ok := c.user[lower]; ok {
		return true
	}
	_, ok := c.words[lower]
	return ok
}

// Suggest returns up to MaxSuggestions corrections for a misspelled word,
// best candidates first.
func (c *Checker) Suggest(word string) []string {
	lower := strings.ToLower(word)

	c.mu.RLock()
	candidates := c.model.Suggestions(lower, false)
	c.mu.RUnlock()

	suggestions := make([]string, 0, MaxSuggestions)
	for _, s := range candidates {
		if s == lower {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == MaxSuggestions {
			break
		}
	}
	return suggestions
}

// AddToUserDictionary marks word as correct and trains the suggestion
// model on it.
func (c *Checker) AddToUserDictionary(word string) {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return
	}

	c.mu.Lock()
	c.user[lower] = struct{}{}
	c.model.TrainWord(lower)
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Publish(eventbus.WordAddedEvent{Word: lower})
	}
}

// IgnoreWord marks word as correct for the rest of the session.
func (c *Checker) IgnoreWord(word string) {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return
	}

	c.mu.Lock()
	c.ignored[lower] = struct{}{}
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Publish(eventbus.WordIgnoredEvent{Word: lower})
	}
}

// UserWords returns the words added to the user dictionary this session.
func (c *Checker) UserWords() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	words := make([]string, 0, len(c.user))
	for w := range c.user {
		words = append(words, w)
	}
	return words
}
