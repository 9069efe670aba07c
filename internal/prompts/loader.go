// Package prompts embeds the LLM prompt catalog. A catalog file is a
// JSON object mapping prompt keys to template text; templates carry
// {{.Key}} placeholders that Format fills in at call time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var catalog embed.FS

// Parsed catalog files, keyed by filename. Files are small and
// immutable, so they are decoded once and served from memory.
var (
	parsedMu sync.RWMutex
	parsed   = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in the named catalog file.
// The filename is relative to the catalog root, e.g. "synthesis.json".
func Get(filename, key string) (string, error) {
	entries, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts required at initialization time. It panics
// when the catalog entry is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// List returns the prompt keys available in a catalog file.
func List(filename string) ([]string, error) {
	entries, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops the parsed catalog so tests can force a reload.
func ClearCache() {
	parsedMu.Lock()
	parsed = make(map[string]map[string]string)
	parsedMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	parsedMu.RLock()
	entries, ok := parsed[filename]
	parsedMu.RUnlock()
	if ok {
		return entries, nil
	}

	data, err := catalog.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	parsedMu.Lock()
	parsed[filename] = entries
	parsedMu.Unlock()
	return entries, nil
}
