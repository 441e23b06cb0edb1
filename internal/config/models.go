package config

// ModelConfig represents the configuration for the fitted pipeline
type ModelConfig struct {
	Path      string
	VocabSize int
	Trees     int
}

// TrainingConfig represents the defaults for the training protocol
type TrainingConfig struct {
	SplitRatio  float64
	Seed        int64
	TextColumn  string
	LabelColumn string
}

// StoreConfig represents the configuration for the detection store
type StoreConfig struct {
	Type          string
	SQLitePath    string
	MySQLDSN      string
	PreviewLength int
}

// DetectorConfig represents the configuration for the detector service
type DetectorConfig struct {
	AllowlistedDomains []string
	MaxBodySize        int
}

// GetModel returns the model configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Path:      c.GetString("model.path"),
		VocabSize: c.GetInt("model.vocab_size"),
		Trees:     c.GetInt("model.trees"),
	}
}

// GetTraining returns the training configuration
func (c *Config) GetTraining() TrainingConfig {
	return TrainingConfig{
		SplitRatio:  c.GetFloat64("training.split_ratio"),
		Seed:        c.GetInt64("training.seed"),
		TextColumn:  c.GetString("training.text_column"),
		LabelColumn: c.GetString("training.label_column"),
	}
}

// GetStore returns the detection store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:          c.GetString("store.type"),
		SQLitePath:    c.GetString("store.sqlite_path"),
		MySQLDSN:      c.GetString("store.mysql_dsn"),
		PreviewLength: c.GetInt("store.preview_length"),
	}
}

// GetDetector returns the detector configuration
func (c *Config) GetDetector() DetectorConfig {
	return DetectorConfig{
		AllowlistedDomains: c.GetStringSlice("detector.allowlisted_domains"),
		MaxBodySize:        c.GetInt("detector.max_body_size"),
	}
}
