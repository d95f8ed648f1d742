package extract

// Config carries the extraction policy for one controller. It is passed at
// construction so documents and tests can run with different policies
// concurrently; there is no package-level tuning state.
type Config struct {
	// MinTextChars is the minimum stripped text-layer length below which a
	// page is considered to need recognition.
	MinTextChars int

	// FieldWindow is how many subsequent non-blank lines are scanned for a
	// value after a matching label line.
	FieldWindow int

	// SampleFirst, SampleLast and SampleStep bound the recognition candidate
	// set on long scanned documents: the first and last N low-text pages are
	// taken in full, plus every SampleStep-th page of the remainder.
	SampleFirst int
	SampleLast  int
	SampleStep  int
}

// DefaultConfig returns the policy used by the batch CLI when nothing is
// overridden.
func DefaultConfig() Config {
	return Config{
		MinTextChars: 60,
		FieldWindow:  3,
		SampleFirst:  25,
		SampleLast:   25,
		SampleStep:   15,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinTextChars <= 0 {
		c.MinTextChars = d.MinTextChars
	}
	if c.FieldWindow <= 0 {
		c.FieldWindow = d.FieldWindow
	}
	if c.SampleFirst <= 0 {
		c.SampleFirst = d.SampleFirst
	}
	if c.SampleLast <= 0 {
		c.SampleLast = d.SampleLast
	}
	if c.SampleStep <= 0 {
		c.SampleStep = d.SampleStep
	}
	return c
}
