package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/resqride/resqride/core/fleet"
	"github.com/resqride/resqride/core/metrics"
	"github.com/resqride/resqride/core/model"
	"github.com/resqride/resqride/core/session"
	"github.com/resqride/resqride/infra/locate"
	"github.com/resqride/resqride/infra/logger"
	"github.com/resqride/resqride/infra/routing"
	"github.com/resqride/resqride/internal/eventbus"
)

var (
	simVehicles int
	simSeed     int64
	simPoints   int
	simSpeedKMH float64
	simTickMS   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one booking end to end against the synthetic route provider",
	RunE:  simulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simVehicles, "vehicles", fleet.DefaultCount, "number of vehicles to generate")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "fleet generation seed")
	simulateCmd.Flags().IntVar(&simPoints, "points", 20, "synthetic route point count")
	simulateCmd.Flags().Float64Var(&simSpeedKMH, "speed", 30, "synthetic travel speed km/h")
	simulateCmd.Flags().IntVar(&simTickMS, "tick", 200, "tick interval in milliseconds")
	rootCmd.AddCommand(simulateCmd)
}

func simulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	requester := model.Coordinate{Lat: locate.DefaultFallbackLat, Lon: locate.DefaultFallbackLon}
	vehicles := fleet.NewGenerator(simSeed).Generate(requester, simVehicles)

	provider := routing.NewSynthetic(routing.SyntheticConfig{Points: simPoints, SpeedKMH: simSpeedKMH})
	bus := eventbus.New()
	defer bus.Close()

	mgr, err := session.NewManager(
		session.Config{TickIntervalMS: simTickMS},
		provider,
		bus,
		logger.New("simulate"),
		metrics.NopSink{},
	)
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()

	sub := bus.Subscribe()
	if err := mgr.Book(vehicles[0], requester); err != nil {
		return fmt.Errorf("book: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	deadline := time.After(2 * time.Minute)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline:
			return fmt.Errorf("simulation did not finish in time")
		case e, ok := <-sub:
			if !ok {
				return nil
			}
			if err := enc.Encode(map[string]any{"type": e.Type(), "event": e}); err != nil {
				return err
			}
			if e.Type() == "arrived" {
				return nil
			}
		}
	}
}
