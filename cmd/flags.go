package cmd

import (
	"math/rand/v2"

	"github.com/ChheanSilapin/yt-tool/internal/config"
	"github.com/ChheanSilapin/yt-tool/internal/export"

	"github.com/spf13/pflag"
)

// styleFlags are the caption look overrides shared by every command.
// A flag only overrides the config file when it was set explicitly.
type styleFlags struct {
	chunkMin       int
	chunkMax       int
	font           string
	fontSize       int
	primaryColor   string
	secondaryColor string
	outlineColor   string
	highlightColor string
	marginV        int
	width          int
	height         int
	language       string
	seed           uint64
}

func (f *styleFlags) register(fs *pflag.FlagSet) {
	defaults := config.Default()

	fs.IntVar(&f.chunkMin, "chunk-min", defaults.Chunk.Min, "minimum words per caption chunk")
	fs.IntVar(&f.chunkMax, "chunk-max", defaults.Chunk.Max, "maximum words per caption chunk")
	fs.StringVar(&f.font, "font", defaults.Style.FontName, "font family name")
	fs.IntVar(&f.fontSize, "font-size", defaults.Style.FontSize, "font size in pixels")
	fs.StringVar(&f.primaryColor, "primary-color", defaults.Style.PrimaryColor, "text color (&HAABBGGRR or #RRGGBB)")
	fs.StringVar(&f.secondaryColor, "secondary-color", "", "secondary color (default: text color)")
	fs.StringVar(&f.outlineColor, "outline-color", defaults.Style.OutlineColor, "outline color")
	fs.StringVar(&f.highlightColor, "highlight-color", "", "highlight box color (default: outline color)")
	fs.IntVar(&f.marginV, "margin-v", defaults.Style.MarginV, "vertical margin from the bottom edge")
	fs.IntVar(&f.width, "width", defaults.Style.PlayResX, "canvas width")
	fs.IntVar(&f.height, "height", defaults.Style.PlayResY, "canvas height")
	fs.StringVar(&f.language, "language", defaults.Language, "BCP 47 language tag for upper-casing")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for chunk sizes (default: random)")
}

// apply copies explicitly set flags onto cfg.
func (f *styleFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("chunk-min", func() { cfg.Chunk.Min = f.chunkMin })
	set("chunk-max", func() { cfg.Chunk.Max = f.chunkMax })
	set("font", func() { cfg.Style.FontName = f.font })
	set("font-size", func() { cfg.Style.FontSize = f.fontSize })
	set("primary-color", func() { cfg.Style.PrimaryColor = f.primaryColor })
	set("secondary-color", func() { cfg.Style.SecondaryColor = f.secondaryColor })
	set("outline-color", func() { cfg.Style.OutlineColor = f.outlineColor })
	set("highlight-color", func() { cfg.Style.HighlightColor = f.highlightColor })
	set("margin-v", func() { cfg.Style.MarginV = f.marginV })
	set("width", func() { cfg.Style.PlayResX = f.width })
	set("height", func() { cfg.Style.PlayResY = f.height })
	set("language", func() { cfg.Language = f.language })
}

// resolveSeed returns --seed when given and a fresh random seed otherwise.
func (f *styleFlags) resolveSeed(fs *pflag.FlagSet) uint64 {
	if fs.Changed("seed") {
		return f.seed
	}
	return rand.Uint64()
}

// buildConfig loads the config file, applies flag overrides and validates
// the result before any transcript is read.
func (f *styleFlags) buildConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseExports(names []string) ([]export.Format, error) {
	formats := make([]export.Format, 0, len(names))
	for _, name := range names {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
