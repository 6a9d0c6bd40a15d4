package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"synthetic-long/src/config"
	"synthetic-long/src/engine"
	"synthetic-long/src/marketdata"
	"synthetic-long/src/metrics"
	"synthetic-long/src/models"
	"synthetic-long/src/utils"
)

type RunArgs struct {
	ConfigPath string
	OutDir     string
	Tracking   string
}

type RunResults struct {
	ExportedFilepath string
	Summary          *metrics.Summary
}

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Backtest a synthetic long strategy: stock plus option legs",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a YAML configuration",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		tracking, err := cmd.Flags().GetString("tracking")
		if err != nil {
			log.Fatalf("error getting tracking: %v", err)
		}

		results, err := Run(RunArgs{
			ConfigPath: configPath,
			OutDir:     outDir,
			Tracking:   tracking,
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(results.Summary)
		log.Infof("Results saved to %s", results.ExportedFilepath)
		log.Info("Done")
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a YAML configuration without running it",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if err := Validate(configPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) (RunResults, error) {
	if err := utils.InitEnvironmentVariables(); err != nil {
		return RunResults{}, fmt.Errorf("failed to init environment variables: %w", err)
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return RunResults{}, err
	}

	if err := cfg.Validate(); err != nil {
		return RunResults{}, err
	}

	legs, err := cfg.ToLegs()
	if err != nil {
		return RunResults{}, err
	}

	start, end, err := cfg.DateRange(legs)
	if err != nil {
		return RunResults{}, err
	}

	log.Infof("Running backtest for %s from %s to %s", cfg.Ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))

	feed, err := marketdata.NewSyntheticSeries(start, end, cfg.DividendYield)
	if err != nil {
		return RunResults{}, err
	}

	initialPrice := cfg.InitialPrice
	if initialPrice == 0 {
		firstSpot, ok := feed.Spot(feed.Dates()[0])
		if !ok {
			return RunResults{}, fmt.Errorf("no spot price on the first trading day")
		}
		initialPrice = firstSpot
	}

	stock, err := models.NewStockPosition(cfg.Ticker, cfg.ShareQty, initialPrice)
	if err != nil {
		return RunResults{}, err
	}

	trackingName := args.Tracking
	if trackingName == "" {
		trackingName = cfg.Tracking
	}

	tracking, err := engine.NewTrackingPolicy(trackingName)
	if err != nil {
		return RunResults{}, err
	}

	valuationEngine, err := engine.NewValuationEngine(stock, legs, tracking)
	if err != nil {
		return RunResults{}, err
	}

	curve, err := valuationEngine.Run(feed)
	if err != nil {
		return RunResults{}, err
	}

	outFile, err := utils.ExportEquityCurve(curve, args.OutDir, "equity_curve.csv")
	if err != nil {
		return RunResults{}, err
	}

	summary, err := metrics.Calculate(curve, stock.InitialValue(), 0.02)
	if err != nil {
		return RunResults{}, err
	}

	log.Infof("Initial position: %s with %d option legs", stock, len(legs))

	return RunResults{
		ExportedFilepath: outFile,
		Summary:          summary,
	}, nil
}

func Validate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	legs, err := cfg.ToLegs()
	if err != nil {
		return err
	}

	start, end, err := cfg.DateRange(legs)
	if err != nil {
		return err
	}

	log.Infof("Configuration is valid")
	log.Infof("  Ticker: %s", cfg.Ticker)
	log.Infof("  Shares: %d", cfg.ShareQty)
	log.Infof("  Option legs: %d", len(legs))
	log.Infof("  Date range: %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	return nil
}

func main() {
	runCmd.Flags().String("config", "", "Path to the backtest YAML configuration.")
	runCmd.Flags().String("outDir", "results", "The directory to write the equity curve to.")
	runCmd.Flags().String("tracking", "", "Option P&L tracking policy: aggregate or per-instrument.")
	runCmd.MarkFlagRequired("config")

	validateCmd.Flags().String("config", "", "Path to the backtest YAML configuration.")
	validateCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
