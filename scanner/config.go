package scanner

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pablor21/typegen/logger"
)

type VisibilityLevel uint8

const (
	VisibilityLevelExported VisibilityLevel = 1 << iota
	VisibilityLevelUnexported
	VisibilityLevelAll = VisibilityLevelExported | VisibilityLevelUnexported
)

func (v VisibilityLevel) String() string {
	var parts []string
	if v.Has(VisibilityLevelExported) {
		parts = append(parts, "exported")
	}
	if v.Has(VisibilityLevelUnexported) {
		parts = append(parts, "unexported")
	}
	return strings.Join(parts, ",")
}

func (v VisibilityLevel) Has(level VisibilityLevel) bool {
	return v&level == level
}

// ParseVisibility parses a comma separated list such as "exported,unexported"
func ParseVisibility(str string) (VisibilityLevel, error) {
	var level VisibilityLevel
	for _, s := range strings.Split(strings.ToLower(str), ",") {
		switch strings.TrimSpace(s) {
		case "":
			continue
		case "exported":
			level |= VisibilityLevelExported
		case "unexported":
			level |= VisibilityLevelUnexported
		case "all":
			level = VisibilityLevelAll
		default:
			return 0, fmt.Errorf("unknown visibility level %q", s)
		}
	}
	if level == 0 {
		level = VisibilityLevelExported
	}
	return level, nil
}

func (v *VisibilityLevel) UnmarshalText(data []byte) error {
	level, err := ParseVisibility(string(data))
	if err != nil {
		return err
	}
	*v = level
	return nil
}

func (v VisibilityLevel) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Config selects the Go packages mapped to classes
type Config struct {
	// Packages are go/packages patterns. "pkg/**" scans recursively and a
	// leading "!" excludes matching import paths.
	Packages []string `json:"packages" yaml:"packages" toml:"packages"`
	// Dir is the directory patterns are resolved from, the working directory when empty
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
	// Visibility selects the declarations and fields that are mapped
	Visibility VisibilityLevel `json:"visibility" yaml:"visibility" toml:"visibility"`
	// MaxConcurrency bounds the goroutines warming up descriptors
	MaxConcurrency int             `json:"max_concurrency" yaml:"max_concurrency" toml:"max_concurrency"`
	LogLevel       logger.LogLevel `json:"log_level" yaml:"log_level" toml:"log_level"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Packages:       []string{},
		Visibility:     VisibilityLevelExported,
		MaxConcurrency: runtime.GOMAXPROCS(0),
		LogLevel:       logger.LogLevelInfo,
	}
}
