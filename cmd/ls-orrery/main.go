// Command ls-orrery is an interactive terminal model of the solar system.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/clock"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	snapshotPath  string
	watchInterval time.Duration
	dateFlag      string
)

const driveInterval = 33 * time.Millisecond // ~30 simulation updates per second

func main() {
	speed := flag.Float64("speed", 86400, "Initial speed multiplier (simulated seconds per real second, 0 = paused)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	minJD := flag.Float64("min-jd", 0, "Override the earliest navigable Julian Date")
	maxJD := flag.Float64("max-jd", 0, "Override the latest navigable Julian Date")
	maxJump := flag.Float64("max-jump", 0, "Override the continuity budget in days")
	maxSpeed := flag.Float64("max-speed", 0, "Override the speed multiplier cap")
	flag.StringVar(&dateFlag, "date", "", "Start date (YYYY-MM-DD or YYYY-MM-DDTHH:MM, default: now)")
	flag.BoolVar(&summaryMode, "summary", false, "Print an ephemeris table instead of the TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export a JSON ephemeris snapshot to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	startJD, err := resolveStartJD(dateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := clock.DefaultConfig()
	if *minJD > 0 {
		cfg.MinJD = *minJD
	}
	if *maxJD > 0 {
		cfg.MaxJD = *maxJD
	}
	if *maxJump > 0 {
		cfg.MaxJumpDays = *maxJump
	}
	if *maxSpeed > 0 {
		cfg.MaxSpeed = *maxSpeed
	}
	cfg.Logger = logger.Named("clock")

	sys := body.NewSystem()

	// Headless mode: evaluate and print, no TUI. Also the fallback when
	// stdout is not a terminal.
	headless := summaryMode || snapshotPath != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Info("stdout is not a terminal, printing summary")
		summaryMode = true
		headless = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if headless {
		runHeadless(ctx, sys, startJD)
		return
	}

	clk := clock.New(startJD, cfg)
	if res := clk.SetSpeed(*speed); !res.OK {
		logger.Warn("initial speed %g rejected (%s), starting at real time", *speed, res.Code)
		clk.SetSpeed(1)
	}
	defer clk.Dispose()

	model := ui.New(clk, sys)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Every accepted time update flows to the UI through the clock's
	// subscriber list; the replay on subscribe delivers the first frame.
	unsubscribe := clk.Subscribe(func(jd float64) {
		p.Send(ui.TimeMsg{JD: jd})
	})
	defer unsubscribe()

	go runDriveLoop(ctx, clk, logger.Named("driver"))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// resolveStartJD converts the -date flag to a Julian Date, defaulting to
// the current instant.
func resolveStartJD(s string) (float64, error) {
	if s == "" {
		return astro.TimeToJD(time.Now().UTC()), nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return astro.TimeToJD(t), nil
		}
	}
	return 0, fmt.Errorf("invalid date %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
}

// runDriveLoop advances the clock in real time: each tick converts the
// elapsed wall-clock interval to simulated days at the current speed and
// commits it through SetTime. The delta is clamped to the continuity
// budget so extreme speeds degrade to the fastest legal progression
// instead of being rejected every frame.
func runDriveLoop(ctx context.Context, clk *clock.Clock, logger *logging.Logger) {
	cfg := clk.Config()
	ticker := time.NewTicker(driveInterval)
	defer ticker.Stop()

	lastReal := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("drive loop shutting down")
			return
		case now := <-ticker.C:
			dt := now.Sub(lastReal).Seconds()
			lastReal = now

			speed := clk.Speed()
			if speed == 0 {
				continue
			}

			delta := dt * speed / astro.SecondsPerDay
			if delta > cfg.MaxJumpDays {
				delta = cfg.MaxJumpDays
			}

			target := clk.CurrentJD() + delta
			if target > cfg.MaxJD {
				target = cfg.MaxJD
			}

			res := clk.SetTime(target)
			if !res.OK {
				// Rejections are logged and skipped; the loop retries on
				// the next tick from the unchanged current time.
				logger.Warn("time update to JD %.5f rejected: %s", target, res.Code)
				continue
			}
			if res.JD == cfg.MaxJD && speed > 0 {
				logger.Info("reached end of supported time range, pausing")
				clk.SetSpeed(0)
			}
		}
	}
}

// runHeadless evaluates the system at the requested instant and prints the
// ephemeris, repeating in watch mode. Without an explicit -date the
// evaluation instant tracks the wall clock.
func runHeadless(ctx context.Context, sys *body.System, startJD float64) {
	evalJD := func() float64 {
		if dateFlag != "" {
			return startJD
		}
		return astro.TimeToJD(time.Now().UTC())
	}

	outputOnce := func() error {
		exp := body.ExportEphemeris(sys, evalJD())

		if snapshotPath != "" {
			if snapshotPath == "-" {
				if err := exp.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := exp.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			exp.WriteSummaryTable(os.Stdout)
		}
		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
