package window

// Config holds the creation parameters of a native window.
// Zero min/max dimensions mean unconstrained.
type Config struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	Resizable bool
}

// WindowBuilderOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowBuilderOption func(c *Config)

// NewConfig applies options over the defaults: a resizable 320x800 window titled "Hello World".
//
// Parameters:
//   - options: variadic list of WindowBuilderOption functions
//
// Returns:
//   - Config: the resolved configuration
func NewConfig(options ...WindowBuilderOption) Config {
	c := Config{
		Title:     "Hello World",
		Width:     320,
		Height:    800,
		Resizable: true,
	}
	for _, opt := range options {
		opt(&c)
	}
	return c
}

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - width: minimum width in pixels
//   - height: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MinWidth = width
		c.MinHeight = height
	}
}

// WithMaxSize sets the maximum allowed window size.
//
// Parameters:
//   - width: maximum width in pixels
//   - height: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MaxWidth = width
		c.MaxHeight = height
	}
}

// WithResizable toggles whether the user can resize the window.
//
// Parameters:
//   - resizable: true to allow resizing
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithResizable(resizable bool) WindowBuilderOption {
	return func(c *Config) {
		c.Resizable = resizable
	}
}
