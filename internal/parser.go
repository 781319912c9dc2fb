package internal

import (
	"fmt"
	"os"
	"sort"
)

// Source loads transactions from a file into a ParseResult.
type Source interface {
	Load(path string, cfg *Config) (ParseResult, error)
}

// SourceFunc is a function that implements Source.
type SourceFunc func(path string, cfg *Config) (ParseResult, error)

func (f SourceFunc) Load(path string, cfg *Config) (ParseResult, error) {
	return f(path, cfg)
}

// sources is the registry of available input sources
var sources = map[string]Source{}

// RegisterSource registers a source with the given name
func RegisterSource(name string, s Source) {
	sources[name] = s
}

// GetSource returns the source for the given name
func GetSource(name string) (Source, error) {
	s, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", name, AvailableSources())
	}
	return s, nil
}

// AvailableSources returns a sorted list of registered source names
func AvailableSources() []string {
	var names []string
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadWhatsAppExport reads a WhatsApp chat export text file and runs the
// full parsing pipeline over it.
func LoadWhatsAppExport(path string, cfg *Config) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading file: %w", err)
	}
	return Parse(string(data), cfg), nil
}

func init() {
	RegisterSource("whatsapp-txt", SourceFunc(LoadWhatsAppExport))
}
