package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// StyleConfig holds the look of the rendered captions. Colors use the ASS
// &HAABBGGRR notation; ParseColor also accepts #RRGGBB.
type StyleConfig struct {
	FontName       string `yaml:"font_name" toml:"font_name"`
	FontSize       int    `yaml:"font_size" toml:"font_size"`
	PrimaryColor   string `yaml:"primary_color" toml:"primary_color"`
	SecondaryColor string `yaml:"secondary_color" toml:"secondary_color"`
	OutlineColor   string `yaml:"outline_color" toml:"outline_color"`
	HighlightColor string `yaml:"highlight_color" toml:"highlight_color"`
	MarginV        int    `yaml:"margin_v" toml:"margin_v"`
	PlayResX       int    `yaml:"play_res_x" toml:"play_res_x"`
	PlayResY       int    `yaml:"play_res_y" toml:"play_res_y"`
}

// ChunkBounds limits how many words are shown on screen at once.
type ChunkBounds struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// Config holds the full caption configuration.
type Config struct {
	Style StyleConfig `yaml:"style" toml:"style"`
	Chunk ChunkBounds `yaml:"chunk" toml:"chunk"`
	// Language is a BCP 47 tag used for upper-casing caption text.
	Language string `yaml:"language" toml:"language"`
}

// Default returns a Config with the stock vertical-video look.
// HighlightColor is left empty on purpose: it falls back to OutlineColor.
func Default() *Config {
	return &Config{
		Style: StyleConfig{
			FontName:     "Poppins",
			FontSize:     80,
			PrimaryColor: "&H00FFFFFF",
			OutlineColor: "&H00FF0080",
			MarginV:      600,
			PlayResX:     1080,
			PlayResY:     1920,
		},
		Chunk: ChunkBounds{
			Min: 2,
			Max: 3,
		},
		Language: "und",
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Chunk.Min < 1 {
		return fmt.Errorf("%w: chunk minimum must be at least 1, got %d", ErrInvalidConfig, c.Chunk.Min)
	}
	if c.Chunk.Min > c.Chunk.Max {
		return fmt.Errorf("%w: chunk minimum %d exceeds maximum %d", ErrInvalidConfig, c.Chunk.Min, c.Chunk.Max)
	}
	if _, err := UpperCaser(c.Language); err != nil {
		return err
	}
	return c.Style.Validate()
}

// Validate checks the style values.
func (s StyleConfig) Validate() error {
	if strings.TrimSpace(s.FontName) == "" {
		return fmt.Errorf("%w: font name is empty", ErrInvalidConfig)
	}
	if strings.ContainsRune(s.FontName, ',') {
		return fmt.Errorf("%w: font name %q contains a comma", ErrInvalidConfig, s.FontName)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %d", ErrInvalidConfig, s.FontSize)
	}
	if s.PlayResX <= 0 || s.PlayResY <= 0 {
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidConfig, s.PlayResX, s.PlayResY)
	}
	if s.MarginV < 0 {
		return fmt.Errorf("%w: vertical margin must not be negative, got %d", ErrInvalidConfig, s.MarginV)
	}
	_, err := s.Resolved()
	return err
}

// Resolved returns a copy with every color canonicalized and the optional
// slots filled: an empty secondary color mirrors the primary one and an
// empty highlight color uses the outline color.
func (s StyleConfig) Resolved() (StyleConfig, error) {
	out := s
	var err error

	if out.PrimaryColor, err = parseColorField("primary", s.PrimaryColor); err != nil {
		return StyleConfig{}, err
	}
	if out.OutlineColor, err = parseColorField("outline", s.OutlineColor); err != nil {
		return StyleConfig{}, err
	}

	out.SecondaryColor = out.PrimaryColor
	if s.SecondaryColor != "" {
		if out.SecondaryColor, err = parseColorField("secondary", s.SecondaryColor); err != nil {
			return StyleConfig{}, err
		}
	}

	out.HighlightColor = out.OutlineColor
	if s.HighlightColor != "" {
		if out.HighlightColor, err = parseColorField("highlight", s.HighlightColor); err != nil {
			return StyleConfig{}, err
		}
	}

	return out, nil
}

func parseColorField(name, value string) (string, error) {
	c, err := ParseColor(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s color: %v", ErrInvalidConfig, name, err)
	}
	return c, nil
}

// Load reads a YAML or TOML file over Default, chosen by extension.
// A missing file is not an error when allowMissing is set.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "yt-tool.yaml"
	}
	return filepath.Join(dir, "yt-tool", "config.yaml")
}
