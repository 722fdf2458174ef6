package schedule

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithDefaultDivision sets the label applied to games whose source record
// carries no division.
func WithDefaultDivision(label string) Option {
	return func(n *Normalizer) {
		if label != "" {
			n.defaultDivision = label
		}
	}
}
