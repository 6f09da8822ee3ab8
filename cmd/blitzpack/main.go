package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantmind-br/blitzpack/internal/app"
	"github.com/quantmind-br/blitzpack/internal/config"
	"github.com/quantmind-br/blitzpack/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blitzpack <url-or-id>",
	Short: "Download a remote project as a directory tree or zip archive",
	Long: `Blitzpack fetches a remote project's file tree through its JSON API,
sanitizes the entries against path traversal, enforces size limits, and
materializes the result either as files on disk or as a zip archive.

The argument may be a full editor URL (.../edit/<id>) or a bare project
identifier.`,
	Version: version.Short(),
	Args:    cobra.ExactArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.blitzpack/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory (default: the project identifier)")
	rootCmd.PersistentFlags().StringP("zip", "z", "", "Write a zip archive to this path instead of a directory")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "API request timeout")
	rootCmd.PersistentFlags().String("max-file-size", "10MB", "Per-file size limit")
	rootCmd.PersistentFlags().String("max-total-size", "200MB", "Cumulative size limit")
	rootCmd.PersistentFlags().Int("retries", 0, "Retry attempts for transient API failures")
	rootCmd.PersistentFlags().Bool("cache", false, "Cache API responses")
	rootCmd.PersistentFlags().Duration("cache-ttl", 24*time.Hour, "Cache TTL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("limits.max_file_size", rootCmd.PersistentFlags().Lookup("max-file-size"))
	_ = viper.BindPFlag("limits.max_total_size", rootCmd.PersistentFlags().Lookup("max-total-size"))
	_ = viper.BindPFlag("retry.max_retries", rootCmd.PersistentFlags().Lookup("retries"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	arg := args[0]
	zipPath, _ := cmd.Flags().GetString("zip")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:   cfg,
		Verbose:  verbose,
		Progress: zipPath == "",
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	if zipPath != "" {
		archive, err := orchestrator.DownloadToZip(ctx, arg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(zipPath, archive.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		fmt.Printf("Wrote %d files to %s\n", archive.Count(), zipPath)
		return nil
	}

	outputDir := cfg.Output.Directory
	dest, err := orchestrator.DownloadToDir(ctx, arg, outputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Project downloaded to %s\n", dest)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
