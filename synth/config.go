package synth

import (
	"log/slog"

	"fixture-generator/descriptor"
)

// Config holds synthesizer options.
type Config struct {
	// MaxDepth caps the recursion depth. Zero means no cap.
	MaxDepth int
	// IncludeUnexported also populates unexported struct fields.
	IncludeUnexported bool
	// TagName is the struct tag holding field options; `fixture:"-"` skips a field.
	TagName string
	// Logger receives debug traces of dispatch decisions.
	Logger *slog.Logger
}

// DefaultConfig returns the default synthesizer configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:          0,
		IncludeUnexported: false,
		TagName:           descriptor.DefaultTagName,
		Logger:            slog.New(slog.DiscardHandler),
	}
}
