package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/config"
	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/di"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "history":
		err = runHistory(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: phishing-detector <command> [flags]

Commands:
  train    --data <csv>            Train a model from a labeled dataset
  predict  --email <text-or-path>  Classify one email
  history  --limit <n>             Show recent detections

Run 'phishing-detector <command> -h' for command flags.
`)
}

// registerCommonFlags wires the flags every subcommand shares.
func registerCommonFlags(fs *flag.FlagSet) (*di.CLIFlags, *string) {
	flags := &di.CLIFlags{}
	allowlist := fs.String("allowlist", "", "Comma-separated list of allowlisted sender domains")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")
	fs.StringVar(&flags.ModelPath, "model", "", "Path to the model artifact")
	fs.StringVar(&flags.StoreType, "store", "", "Detection store backend (sqlite, mysql, memory)")
	fs.StringVar(&flags.SQLitePath, "db", "", "Path to the SQLite detection database")
	fs.StringVar(&flags.MySQLDSN, "mysql-dsn", "", "MySQL DSN for the detection store")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	return flags, allowlist
}

func finishCommonFlags(flags *di.CLIFlags, allowlist string) {
	if allowlist == "" {
		return
	}
	for _, domain := range strings.Split(allowlist, ",") {
		flags.Allowlist = append(flags.Allowlist, strings.TrimSpace(domain))
	}
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	flags, allowlist := registerCommonFlags(fs)
	dataPath := fs.String("data", "", "Path to the labeled training CSV (required)")
	split := fs.Float64("split", -1, "Held-out test fraction (default from config)")
	seed := fs.Int64("seed", -1, "Random seed for the train/test split (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	finishCommonFlags(flags, *allowlist)

	if *dataPath == "" {
		fs.Usage()
		return fmt.Errorf("--data is required")
	}

	container, err := di.BuildContainer(flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	return container.Invoke(func(
		svc *core.DetectorService,
		store core.DetectionStore,
		cfg *config.Config,
		logger *zap.Logger,
	) error {
		defer logger.Sync()
		defer store.Close()

		training := cfg.GetTraining()
		splitRatio := training.SplitRatio
		if *split >= 0 {
			splitRatio = *split
		}
		trainSeed := training.Seed
		if *seed >= 0 {
			trainSeed = *seed
		}

		fmt.Printf("=== Training ===\n")
		fmt.Printf("Data: %s\n", *dataPath)
		fmt.Printf("Split ratio: %.2f (seed %d)\n", splitRatio, trainSeed)

		startTime := time.Now()
		report, err := svc.Train(context.Background(), *dataPath, splitRatio, trainSeed)
		if err != nil {
			return err
		}

		fmt.Printf("\n=== Results ===\n")
		fmt.Printf("Train size: %d\n", report.TrainSize)
		fmt.Printf("Test size: %d\n", report.TestSize)
		fmt.Printf("Accuracy: %.4f\n", report.Accuracy)
		fmt.Printf("\n%-12s %-10s %-10s %-10s %s\n", "Class", "Precision", "Recall", "F1", "Support")
		printClassMetrics("legitimate", report.Legitimate)
		printClassMetrics("phishing", report.Phishing)
		fmt.Printf("\nTraining time: %v\n", time.Since(startTime))
		return nil
	})
}

func printClassMetrics(name string, m core.ClassMetrics) {
	fmt.Printf("%-12s %-10.4f %-10.4f %-10.4f %d\n", name, m.Precision, m.Recall, m.F1, m.Support)
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	flags, allowlist := registerCommonFlags(fs)
	email := fs.String("email", "", "Email text or path to a file containing the email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	finishCommonFlags(flags, *allowlist)

	if *email == "" {
		fs.Usage()
		return fmt.Errorf("--email is required")
	}

	// An existing file wins over literal text.
	content := *email
	if info, err := os.Stat(content); err == nil && !info.IsDir() {
		data, err := os.ReadFile(content)
		if err != nil {
			return fmt.Errorf("failed to read email file: %w", err)
		}
		content = string(data)
	}

	container, err := di.BuildContainer(flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	return container.Invoke(func(
		svc *core.DetectorService,
		store core.DetectionStore,
		logger *zap.Logger,
	) error {
		defer logger.Sync()
		defer store.Close()

		startTime := time.Now()
		verdict, err := svc.Predict(context.Background(), content)
		if err != nil {
			return err
		}

		fmt.Printf("=== Results ===\n")
		fmt.Printf("Is phishing: %t\n", verdict.IsPhishing)
		fmt.Printf("Confidence: %.4f\n", verdict.Confidence)
		fmt.Printf("Model used: %s\n", verdict.ModelUsed)
		if verdict.StoreErr != nil {
			fmt.Printf("Warning: detection was not recorded: %v\n", verdict.StoreErr)
		} else {
			fmt.Printf("Record id: %d\n", verdict.RecordID)
		}
		fmt.Printf("Processing time: %v\n", time.Since(startTime))
		return nil
	})
}

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	flags, allowlist := registerCommonFlags(fs)
	limit := fs.Int("limit", 10, "Number of detections to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	finishCommonFlags(flags, *allowlist)

	container, err := di.BuildContainer(flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	return container.Invoke(func(
		svc *core.DetectorService,
		store core.DetectionStore,
		logger *zap.Logger,
	) error {
		defer logger.Sync()
		defer store.Close()

		summaries, err := svc.History(context.Background(), *limit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Printf("No detections recorded yet.\n")
			return nil
		}

		fmt.Printf("%-6s %-25s %-10s %-10s %s\n", "ID", "Timestamp", "Verdict", "Confidence", "Preview")
		for _, s := range summaries {
			verdict := "legit"
			if s.Prediction == core.LabelPhishing {
				verdict = "phishing"
			}
			fmt.Printf("%-6d %-25s %-10s %-10.4f %s\n",
				s.ID,
				s.CreatedAt.Format(time.RFC3339),
				verdict,
				s.Confidence,
				s.Preview)
		}
		return nil
	})
}
