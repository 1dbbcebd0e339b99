package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rshep3087/bizmargin/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long:  `Commands for inspecting and creating the bizmargin configuration file.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after flags, environment and file are merged. Secrets are masked.`,
		RunE:  runConfigShow,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "# loaded from %s\n", used)
	}

	data, err := toml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// starterConfig is written by config init.
func starterConfig() config.Config {
	return config.Config{
		Currency:   config.DefaultCurrency,
		Mode:       config.DirectMode,
		Output:     config.TableOutput,
		ServerAddr: ":8080",
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "bizmargin.toml"
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	data, err := toml.Marshal(starterConfig())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	log.Debug("wrote config file", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
