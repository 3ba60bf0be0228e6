package core

// RuntimeConfig contains configuration passed to a session at creation.
// The platform fills it from flags and the terminal size.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second requested from the platform (default 60)
	Seed     int64  // RNG seed for brick layout
	Layout   string // Brick layout ID (empty = config default)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
