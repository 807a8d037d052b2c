package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/feedtune/internal/config"
	"github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/logger"
	"github.com/abhisek/feedtune/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "feedtune",
	Short: "Tune your study feed",
	Long:  "feedtune is a terminal app for shaping the cards an adaptive study feed serves: content mix, difficulty and question style.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FEEDTUNE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/feedtune/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "Preference profile (overrides FEEDTUNE_PROFILE env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Feed server base URL (overrides FEEDTUNE_API_URL env var)")

	rootCmd.Flags().String("topic", "", "Topic to request when starting a feed from the TUI")
	rootCmd.Flags().Bool("skip-welcome", false, "Start at the home screen")
	rootCmd.Flags().Bool("offline", false, "Tune preferences without contacting the feed server")

	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers defaults, .env, FEEDTUNE_* variables, the YAML file and
// finally command line flags, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	cfg, err := config.LoadFile(cfg, path)
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("profile"); v != "" {
		cfg.Profile = v
	}
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, or the default XDG
// path, making sure its directory exists.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, config.EnsureDir(cfg.DBPath)
	}
	return config.DefaultDBPath()
}

// env bundles what every subcommand needs.
type env struct {
	cfg config.Config
	log *logger.Logger
	st  *store.Store
}

// openEnv loads config, starts the file logger and opens the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = config.DefaultLogPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	log, err := logger.New(cfg.LogMode, logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		log = logger.Nop()
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("environment ready", "db", dbPath, "profile", cfg.Profile, "api_url", cfg.APIURL)

	return &env{cfg: cfg, log: log, st: st}, nil
}

func (e *env) Close() {
	_ = e.st.Close()
	e.log.Sync()
}

// feedClient builds a backend client from the config.
func (e *env) feedClient() *feed.Client {
	return feed.NewClient(e.cfg.APIURL,
		feed.WithTimeout(e.cfg.RequestTimeout),
		feed.WithVersion(resolvedVersion()),
		feed.WithLogger(e.log.With("component", "feed")),
	)
}
