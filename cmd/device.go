package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
	"komfovent_gateway/internal/service"

	"github.com/spf13/cobra"
)

var discoverSubnet string

func init() {
	discoverCmd.Flags().StringVar(&discoverSubnet, "subnet", "", "IPv4 /24 to sweep, e.g. 192.168.1.0/24 (default: detected)")
	rootCmd.AddCommand(discoverCmd, stateCmd, scheduleCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find C6 panels on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := cfg.Discovery
		if discoverSubnet != "" {
			opts.Subnet = discoverSubnet
		}
		found, err := komfovent.NewDiscovery(opts).Discover(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(found)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read the unit once and print its state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd.Context(), func(ctx context.Context, dev service.Device) error {
			snaps := repository.NewSnapshotMemory()
			poller := service.NewPollerService(dev, snaps, discardEvents{}, nil, logger.Nop())
			mon := service.NewMonitoringService(snaps, dev, poller.PollOnce)
			d, err := mon.Diagnostics(ctx)
			if err != nil {
				return err
			}
			return printJSON(d)
		})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the decoded weekly schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd.Context(), func(ctx context.Context, dev service.Device) error {
			v, err := service.NewScheduleService(dev, discardEvents{}, logger.Nop()).GetSchedule(ctx)
			if err != nil {
				return err
			}
			return printJSON(v)
		})
	},
}

func withDevice(ctx context.Context, fn func(context.Context, service.Device) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireDevice(); err != nil {
		return err
	}
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return err
	}
	client := komfovent.NewClient(clientCfg)
	defer client.Close()
	return fn(ctx, client)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// discardEvents drops journal writes; one-shot commands keep no journal.
type discardEvents struct{}

func (discardEvents) Append(context.Context, models.DeviceEvent) error { return nil }
func (discardEvents) List(context.Context, time.Time, time.Time, string, int) ([]models.DeviceEvent, error) {
	return nil, nil
}
