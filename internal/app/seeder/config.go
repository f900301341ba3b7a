package seeder

// Config holds launch coordinator settings.
type Config struct {
	// Parallelism bounds how many distinct seeds import at once.
	Parallelism int
	// Force ignores the launch gate.
	Force bool
}

func (c Config) parallelism() int {
	if c.Parallelism < 1 {
		return 1
	}
	return c.Parallelism
}
