package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/ayudante/data/db/records.db"
	}
	if cfg.Corpus.DatasetPath == "" {
		cfg.Corpus.DatasetPath = "/usr/local/var/ayudante/data/dataset.json"
	}
	if cfg.Dialog.FuzzyThreshold == 0 {
		cfg.Dialog.FuzzyThreshold = 0.6
	}
	cfg.Ranking.ApplyDefaults()
	if cfg.Fallback.APIKeyEnv == "" {
		cfg.Fallback.APIKeyEnv = "OPENAI_API_KEY"
	}
}
