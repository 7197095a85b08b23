package stoplist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var englishYAML []byte

// DefaultCustom holds the domain exclusions applied on top of the base list.
var DefaultCustom = []string{"arxiv", "paper", "show", "using"}

// Manager holds the set of words that never become tokens.
type Manager struct {
	stops map[string]struct{}
}

// File is the on-disk stoplist format.
type File struct {
	Terms []string `yaml:"terms"`
}

// NewManager creates a manager from a base list plus custom exclusions.
// All entries are lowercased.
func NewManager(base []string, custom ...string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(base)+len(custom))}
	for _, s := range base {
		m.Add(s)
	}
	for _, s := range custom {
		m.Add(s)
	}
	return m
}

// English returns the built-in standard English stopword list.
func English() []string {
	terms, err := parse(englishYAML)
	if err != nil {
		// embedded at build time; a parse failure is a programming error
		panic(fmt.Sprintf("stoplist: embedded english list: %v", err))
	}
	return terms
}

// LoadYAML reads a stoplist file of the form `terms: [...]`.
func LoadYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stoplist %s: %w", path, err)
	}
	terms, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}
	return terms, nil
}

func parse(data []byte) ([]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Terms, nil
}

// IsStop checks if a token is a stopword. The token is expected lowercased.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a word to the stoplist
func (m *Manager) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	m.stops[word] = struct{}{}
}

// Remove removes a word from the stoplist
func (m *Manager) Remove(word string) {
	delete(m.stops, strings.ToLower(word))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
