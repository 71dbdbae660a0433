package ranking

// RankerConfig holds the weights and cutoffs for relevance scoring.
type RankerConfig struct {
	// Weights for the four scoring terms.
	ExactTextWeight      float64 `yaml:"exact_text_weight"`      // default: 0.4
	KeywordWeight        float64 `yaml:"keyword_weight"`         // default: 0.2
	RegulationWeight     float64 `yaml:"regulation_weight"`      // default: 0.3
	NormalizedTextWeight float64 `yaml:"normalized_text_weight"` // default: 0.1

	// MinScore is the exclusive lower bound; records scoring at or below
	// it are discarded.
	MinScore float64 `yaml:"min_score"` // default: 0.3
	// MaxResults caps how many candidates are returned.
	MaxResults int `yaml:"max_results"` // default: 5
}

// DefaultRankerConfig returns the tuned default configuration.
func DefaultRankerConfig() *RankerConfig {
	return &RankerConfig{
		ExactTextWeight:      0.4,
		KeywordWeight:        0.2,
		RegulationWeight:     0.3,
		NormalizedTextWeight: 0.1,
		MinScore:             0.3,
		MaxResults:           5,
	}
}

// ApplyDefaults fills zero values with defaults.
func (c *RankerConfig) ApplyDefaults() {
	defaults := DefaultRankerConfig()
	if c.ExactTextWeight == 0 {
		c.ExactTextWeight = defaults.ExactTextWeight
	}
	if c.KeywordWeight == 0 {
		c.KeywordWeight = defaults.KeywordWeight
	}
	if c.RegulationWeight == 0 {
		c.RegulationWeight = defaults.RegulationWeight
	}
	if c.NormalizedTextWeight == 0 {
		c.NormalizedTextWeight = defaults.NormalizedTextWeight
	}
	if c.MinScore == 0 {
		c.MinScore = defaults.MinScore
	}
	if c.MaxResults == 0 {
		c.MaxResults = defaults.MaxResults
	}
}
