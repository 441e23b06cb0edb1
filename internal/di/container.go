package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/allowlist"
	"github.com/fuchs284/Cybersecurityproject/internal/config"
	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/dataset"
	"github.com/fuchs284/Cybersecurityproject/internal/factory"
	"github.com/fuchs284/Cybersecurityproject/internal/logging"
	"github.com/fuchs284/Cybersecurityproject/internal/ml"
	"github.com/fuchs284/Cybersecurityproject/internal/textproc"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// CLIFlags contains the command line flags shared by all subcommands.
// Empty string values fall back to the configuration defaults.
type CLIFlags struct {
	ConfigFile string
	ModelPath  string
	StoreType  string
	SQLitePath string
	MySQLDSN   string
	Allowlist  []string
	Verbose    bool
	JSONLog    bool
}

// BuildContainer creates and configures a dependency injection container
// for one CLI invocation.
func BuildContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(buildConfig); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register sender allowlist
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *allowlist.Checker {
		return allowlist.NewChecker(cfg.GetDetector().AllowlistedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register detection store
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.StoreFactory) (core.DetectionStore, error) {
		return f.CreateDetectionStore()
	}); err != nil {
		return nil, err
	}

	// Register text pipeline stages
	if err := container.Provide(func(logger *zap.Logger) core.EmailExtractor {
		return textproc.NewExtractor(logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func() (core.TextNormalizer, error) {
		return textproc.NewNormalizer()
	}); err != nil {
		return nil, err
	}

	// Register model pipeline
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.PipelineTrainer {
		model := cfg.GetModel()
		return ml.NewTrainer(model.VocabSize, model.Trees, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.PipelineRepository {
		return ml.NewFileRepository(cfg.GetModel().Path, logger)
	}); err != nil {
		return nil, err
	}

	// Register training data loader
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SampleSource {
		training := cfg.GetTraining()
		return dataset.NewCSVLoader(training.TextColumn, training.LabelColumn, logger)
	}); err != nil {
		return nil, err
	}

	// Register max body size
	if err := container.Provide(func(cfg *config.Config) int {
		return cfg.GetDetector().MaxBodySize
	}); err != nil {
		return nil, err
	}

	// Register detector service
	if err := container.Provide(core.NewDetectorService); err != nil {
		return nil, err
	}

	return container, nil
}

// buildConfig loads the config file when one is given, otherwise layers
// the flag overrides on top of the defaults.
func buildConfig(flags *CLIFlags) (*config.Config, error) {
	if flags.ConfigFile != "" {
		return config.NewFromFile(flags.ConfigFile)
	}

	v := config.NewEmptyViper()
	if flags.ModelPath != "" {
		v.Set("model.path", flags.ModelPath)
	}
	if flags.StoreType != "" {
		v.Set("store.type", flags.StoreType)
	}
	if flags.SQLitePath != "" {
		v.Set("store.sqlite_path", flags.SQLitePath)
	}
	if flags.MySQLDSN != "" {
		v.Set("store.mysql_dsn", flags.MySQLDSN)
	}
	if len(flags.Allowlist) > 0 {
		v.Set("detector.allowlisted_domains", flags.Allowlist)
	}
	return config.NewFromViper(v), nil
}
