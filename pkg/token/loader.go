package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"parsec/pkg/parsec"
)

// Format represents the format of a language definition file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config is the serializable form of a LanguageDef. Character classes are
// referenced by name ("letter", "alphanum", ...) or given literally as a
// set of characters.
type Config struct {
	Name            string   `json:"name" yaml:"name"`
	CommentStart    string   `json:"commentStart" yaml:"commentStart"`
	CommentEnd      string   `json:"commentEnd" yaml:"commentEnd"`
	CommentLine     string   `json:"commentLine" yaml:"commentLine"`
	NestedComments  bool     `json:"nestedComments" yaml:"nestedComments"`
	IdentStart      string   `json:"identStart" yaml:"identStart"`
	IdentLetter     string   `json:"identLetter" yaml:"identLetter"`
	OpStart         string   `json:"opStart" yaml:"opStart"`
	OpLetter        string   `json:"opLetter" yaml:"opLetter"`
	ReservedNames   []string `json:"reservedNames" yaml:"reservedNames"`
	ReservedOpNames []string `json:"reservedOpNames" yaml:"reservedOpNames"`
	CaseSensitive   *bool    `json:"caseSensitive" yaml:"caseSensitive"`
}

// ValidationError represents a language definition validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

// Loader loads a language definition from JSON or YAML files.
type Loader struct {
	configPaths []string
}

// NewLoader creates a loader that reads the given paths in order; settings
// from later files override earlier ones. Missing files are skipped.
func NewLoader(configPaths []string) *Loader {
	return &Loader{configPaths: configPaths}
}

// Load reads and merges the configured files, falling back to the default
// definition when none exist, and resolves the result to a LanguageDef.
func (l *Loader) Load() (LanguageDef, error) {
	config := &Config{}
	found := false
	for _, path := range l.configPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := l.loadFile(config, path); err != nil {
			return LanguageDef{}, fmt.Errorf("failed to load language config from %s: %w", path, err)
		}
		found = true
	}
	if !found {
		return DefaultLanguageDef(), nil
	}
	if err := validateConfig(config); err != nil {
		return LanguageDef{}, fmt.Errorf("language config validation failed: %w", err)
	}
	return config.Resolve()
}

// loadFile merges one file into config, detecting the format by extension.
func (l *Loader) loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	switch detectFormat(path) {
	case FormatJSON:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	return nil
}

// detectFormat detects the file format by extension, defaulting to YAML.
func detectFormat(path string) Format {
	switch filepath.Ext(path) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// validateConfig rejects configurations that cannot form a usable
// definition.
func validateConfig(config *Config) error {
	if config.CommentStart == "" && config.CommentEnd != "" {
		return &ValidationError{Field: "commentStart", Message: "commentEnd is set but commentStart is empty"}
	}
	if config.CommentStart != "" && config.CommentEnd == "" {
		return &ValidationError{Field: "commentEnd", Message: "commentStart is set but commentEnd is empty"}
	}
	for _, field := range []struct{ name, class string }{
		{"identStart", config.IdentStart},
		{"identLetter", config.IdentLetter},
		{"opStart", config.OpStart},
		{"opLetter", config.OpLetter},
	} {
		if _, err := resolveClass(field.class); err != nil {
			return &ValidationError{Field: field.name, Message: err.Error()}
		}
	}
	return nil
}

// Resolve turns the serializable config into a LanguageDef, starting from
// the defaults and overriding what the config sets.
func (c *Config) Resolve() (LanguageDef, error) {
	if err := validateConfig(c); err != nil {
		return LanguageDef{}, err
	}
	def := DefaultLanguageDef()
	def.CommentStart = c.CommentStart
	def.CommentEnd = c.CommentEnd
	def.CommentLine = c.CommentLine
	def.NestedComments = c.NestedComments
	def.ReservedNames = c.ReservedNames
	def.ReservedOpNames = c.ReservedOpNames
	if c.CaseSensitive != nil {
		def.CaseSensitive = *c.CaseSensitive
	}
	for _, bind := range []struct {
		class  string
		target *parsec.Parser[rune, rune]
	}{
		{c.IdentStart, &def.IdentStart},
		{c.IdentLetter, &def.IdentLetter},
		{c.OpStart, &def.OpStart},
		{c.OpLetter, &def.OpLetter},
	} {
		if bind.class == "" {
			continue
		}
		p, err := resolveClass(bind.class)
		if err != nil {
			return LanguageDef{}, err
		}
		*bind.target = p
	}
	return def, nil
}

// resolveClass maps a named character class to its parser. Unknown names
// prefixed with "oneof:" are treated as literal character sets.
func resolveClass(class string) (parsec.Parser[rune, rune], error) {
	switch class {
	case "":
		return nil, nil
	case "letter":
		return parsec.Letter(), nil
	case "digit":
		return parsec.Digit(), nil
	case "hexDigit":
		return parsec.HexDigit(), nil
	case "alphanum":
		return parsec.AlphaNum(), nil
	case "alphanum_":
		return parsec.Alt(parsec.AlphaNum(), parsec.Char('_')), nil
	case "letter_":
		return parsec.Alt(parsec.Letter(), parsec.Char('_')), nil
	case "lower":
		return parsec.Lower(), nil
	case "upper":
		return parsec.Upper(), nil
	}
	if set, ok := strings.CutPrefix(class, "oneof:"); ok {
		if set == "" {
			return nil, fmt.Errorf("empty character set in class %q", class)
		}
		return parsec.OneOf(set), nil
	}
	return nil, fmt.Errorf("unknown character class %q", class)
}
