package main

import (
	"fmt"
	"os"

	"komfovent_gateway/internal/config"

	"github.com/spf13/cobra"
)

var configPath string

// @title                       Komfovent C6 gateway API
// @version                     1.0
// @description                 REST and WebSocket gateway for Komfovent C6 ventilation units.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	Execute()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "komfovent",
	Short:         "Gateway and command line client for Komfovent C6 ventilation units",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
