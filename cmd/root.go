package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/beam-sim/beam-sim/sim"
	"github.com/beam-sim/beam-sim/sim/display"
	"github.com/beam-sim/beam-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	seed        int64   // Seed for deterministic traffic and policy draws
	durationSec float64 // Total simulated time (in seconds)
	stepMillis  int64   // Mobility step time (in milliseconds)
	logLevel    string  // Log verbosity level

	// Beam-allocation policy flags
	mode            int     // 0 = greedy best-SNR, 1 = MACOL
	epsilon         float64 // MACOL exploration rate after explore-first
	exploreFirstSec float64 // MACOL explore-first phase (in seconds)

	// Traffic flags
	numCars  int     // number of vehicles kept on the highway
	speedMin float64 // minimum vehicle speed (m/s)
	speedMax float64 // maximum vehicle speed (m/s)

	// Reporting and output flags
	periodSec    float64 // statistics period (in seconds)
	scenarioFile string  // optional YAML scenario override
	sessionDir   string  // directory for session CSV files
	noSession    bool    // disable the session CSV file

	// Display flags
	showDisplay bool    // live terminal animation
	playSpeed   float64 // animation playback speed (x times real time)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "beam-sim",
	Short: "Discrete-event simulator for mmWave vehicular beam allocation",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the beam allocation simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := sim.DefaultScenario()
		if scenarioFile != "" {
			scenario, err = GetScenarioConfig(scenarioFile)
			if err != nil {
				logrus.Fatalf("unable to read scenario config: %v", err)
			}
		}

		cfg := sim.SimConfig{
			Seed:      seed,
			Horizon:   int64(durationSec * sim.TicksPerSecond),
			StepTicks: stepMillis,
			Policy: sim.PolicyConfig{
				Mode:         mode,
				Epsilon:      epsilon,
				ExploreTicks: int64(exploreFirstSec * sim.TicksPerSecond),
			},
			Mobility: sim.MobilityConfig{
				NumCars:  numCars,
				SpeedMin: speedMin,
				SpeedMax: speedMax,
			},
			Report: sim.ReportConfig{
				PeriodTicks: int64(periodSec * sim.TicksPerSecond),
			},
		}

		s, err := sim.NewSimulator(cfg, scenario)
		if err != nil {
			logrus.Fatalf("unable to build simulation: %v", err)
		}

		if !noSession {
			writer, err := trace.NewSessionWriter(sessionDir)
			if err != nil {
				logrus.Fatalf("unable to create session file: %v", err)
			}
			defer writer.Close()
			s.Writer = writer
			logrus.Infof("Recording session %s", writer.SessionID)
		}

		// Log configuration
		logrus.Infof("Starting simulation: scenario=%q, policy=%q, cars=%d, horizon=%.0fs",
			scenario.Name, s.Policy.Name(), numCars, durationSec)

		startTime := time.Now() // Get current time (start)

		if showDisplay {
			if err := display.Run(s, playSpeed); err != nil {
				logrus.Fatalf("display error: %v", err)
			}
		} else {
			s.Run()
		}

		s.Metrics.Print(s.Policy.Name(), startTime)
		printSummary(trace.Summarize(s.Trace))

		logrus.Info("Simulation complete.")
	},
}

// printSummary displays the end-of-run connection summary.
func printSummary(summary *trace.SessionSummary) {
	fmt.Println("=== Connection Summary ===")
	fmt.Printf("Finished connections : %d\n", summary.Connections)
	if summary.Connections == 0 {
		return
	}
	fmt.Printf("Interference-free    : %.2f%% (mean per connection)\n", 100*summary.MeanInterferenceFreeRatio)
	fmt.Printf("Service displacement : mean=%.2fm median=%.2fm p90=%.2fm\n",
		summary.MeanServiceDisplacement, summary.MedianServiceDisplacement, summary.P90ServiceDisplacement)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic traffic and policy draws")
	runCmd.Flags().Float64Var(&durationSec, "duration", 1950, "Total simulated time (in seconds)")
	runCmd.Flags().Int64Var(&stepMillis, "step", 100, "Mobility step time (in milliseconds)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Beam-allocation policy configs
	runCmd.Flags().IntVarP(&mode, "mode", "m", 0, "0 for greedy best-SNR (default), 1 for MACOL")
	runCmd.Flags().Float64Var(&epsilon, "epsilon", 0.05, "MACOL exploration rate after the explore-first phase")
	runCmd.Flags().Float64Var(&exploreFirstSec, "explore-first", 120, "MACOL explore-first phase (in seconds)")

	// Traffic configs
	runCmd.Flags().IntVar(&numCars, "cars", 20, "Number of vehicles kept on the highway")
	runCmd.Flags().Float64Var(&speedMin, "speed-min", 22.3, "Minimum vehicle speed (m/s)")
	runCmd.Flags().Float64Var(&speedMax, "speed-max", 31.2, "Maximum vehicle speed (m/s)")

	// Reporting and output configs
	runCmd.Flags().Float64Var(&periodSec, "period", 30, "Statistics period (in seconds)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file (default: built-in M26 layout)")
	runCmd.Flags().StringVar(&sessionDir, "session-dir", ".", "Directory for session CSV files")
	runCmd.Flags().BoolVar(&noSession, "no-session", false, "Disable the session CSV file")

	// Display configs
	runCmd.Flags().BoolVar(&showDisplay, "display", false, "Show the live terminal animation")
	runCmd.Flags().Float64Var(&playSpeed, "speed", 15.0, "Animation playback speed (x times real time)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
