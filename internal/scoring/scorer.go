package scoring

// Scorer applies one immutable Config to every scoring operation.
type Scorer struct {
	cfg Config
}

// New validates cfg and returns a Scorer bound to it
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Default returns a Scorer using DefaultConfig
func Default() *Scorer {
	return &Scorer{cfg: DefaultConfig()}
}

// Config returns the configuration the Scorer was built with
func (s *Scorer) Config() Config {
	return s.cfg
}
