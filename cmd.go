package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rshep3087/bizmargin/config"
)

const (
	jsonOutputFormat  = config.JSONOutput
	tableOutputFormat = config.TableOutput
)

// version is set at build time.
var version = "dev"

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bizmargin",
	Short: "Evaluate a business's profit margin",
	Long: `bizmargin collects a business's expenses and income, computes totals, profit and
profit margin, and explains what the margin means for the business.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		log.SetLevel(log.InfoLevel)
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
	RunE: func(c *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return rootAction(c.Context(), cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bizmargin.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("currency", config.DefaultCurrency, "ISO 4217 currency code used to display amounts")
	rootCmd.PersistentFlags().String("mode", config.DirectMode, "period mode: direct or monthly")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency"))
	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))

	viper.SetDefault("output", tableOutputFormat)
	viper.SetDefault("server_addr", ":8080")

	_ = viper.BindEnv("lunchmoney_token", "LUNCHMONEY_API_TOKEN")
	_ = viper.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")

	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.AddCommand(newTiersCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newImportCmd(newLunchMoneyClient))
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bizmargin")
		viper.SetConfigType("toml")
		for _, dir := range configSearchPaths() {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("bizmargin")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
		return
	}

	log.Debug("Using config file", "file", viper.ConfigFileUsed())
}

// configSearchPaths returns the directories searched for bizmargin.toml,
// highest precedence first.
func configSearchPaths() []string {
	paths := []string{"."}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "bizmargin"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "bizmargin"))
	}

	return append(paths, "/etc/bizmargin")
}

// loadConfig builds the effective configuration from flags, environment and file.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// validateOutputFormat reads and checks the --output flag of cmd. The
// configured default applies when the flag was not given.
func validateOutputFormat(cmd *cobra.Command, fallback string) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")
	if !cmd.Flags().Changed("output") && fallback != "" {
		outputFormat = fallback
	}

	validFormats := []string{tableOutputFormat, jsonOutputFormat}
	if !slices.Contains(validFormats, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, validFormats)
	}

	return outputFormat, nil
}

// Utility functions for output formatting.
func outputJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func createStyledTable(headers ...string) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
