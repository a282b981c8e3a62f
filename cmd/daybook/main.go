package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvlko/daybook/internal/app"
	"github.com/nvlko/daybook/internal/prefs"
)

var (
	configPath     string
	prefsPath      string
	refreshSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "daybook tracks your food diary from the terminal",
	Long:  "daybook is a terminal client for a personal tracking server: a food diary with a shared catalogue, body weight, calorie statistics, and synced settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return app.Run(ctx, app.Options{
			ConfigPath:   configPath,
			PrefsPath:    prefsPath,
			RefreshEvery: refreshSeconds,
		})
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		version := "devel"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
		fmt.Fprintf(cmd.OutOrStdout(), "daybook %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config path (optional)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "override prefs path (default "+prefs.DefaultPath()+")")
	rootCmd.Flags().IntVar(&refreshSeconds, "refresh", 0, "stats refresh interval in seconds (optional)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "daybook: %v\n", err)
		os.Exit(1)
	}
}
