package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/logger"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kika-sampling",
	Short: "KIKA nuclear data sampling CLI",
	Long: `KIKA Sampling is a tool for preparing nuclear data perturbation jobs.
It validates ACE and ENDF sampling configurations, renders them into
self-contained Python scripts for the KIKA library, estimates runtimes and
runs dry runs against a KIKA processing service.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kika-sampling/config.yaml)")
	flags.String("env", "", "environment name to use")
	flags.String("url", "", "KIKA service URL (overrides environment)")
	flags.String("api-key", "", "KIKA service API key")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")

	for _, name := range []string{"env", "url", "api-key", "log-level", "no-color"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(dryRunCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(envCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else if dir, err := config.Dir(); err == nil {
		// Search for config in home directory
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// KIKA_URL, KIKA_API_KEY, KIKA_LOG_LEVEL, ...
	viper.SetEnvPrefix("KIKA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	configErr := viper.ReadInConfig()

	// Configure logger based on flags
	logger.SetLevel(logger.ParseLevel(viper.GetString("log-level")))
	logger.SetNoColor(viper.GetBool("no-color") || !term.IsTerminal(int(os.Stdout.Fd())))

	if configErr == nil {
		logger.Debugf("Using config file %s", filepath.Clean(viper.ConfigFileUsed()))
	} else if cfgFile != "" {
		logger.Warnf("Failed to read config file %s: %v", cfgFile, configErr)
	}
}
