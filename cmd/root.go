package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/mcugen/cmd/gen"
	"github.com/Manu343726/mcugen/cmd/inspect"
	"github.com/Manu343726/mcugen/cmd/tools"
	"github.com/Manu343726/mcugen/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mcugen",
	Short: "Register headers generator for microcontrollers",
	Long: `mcugen reads the register descriptions of microcontroller devices and computes
their register layouts: bitfield packing, register group offsets, absolute addresses and
the C macros describing each field.

This CLI generates device headers and provides tools to inspect the computed layouts.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(gen.GenCmd, inspect.InspectCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mcugen.yaml)")
	flags.String("catalog", "devices.yaml", "Device catalog file")
	flags.StringP("output", "o", ".", "Output directory")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-json", "", "Also write JSON logs to this file")
	flags.Int("revision", 2, "Device feature mapping revision (1 or 2)")

	cobra.CheckErr(viper.BindPFlag("catalog", flags.Lookup("catalog")))
	cobra.CheckErr(viper.BindPFlag("output", flags.Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("log.level", flags.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log.json", flags.Lookup("log-json")))
	cobra.CheckErr(viper.BindPFlag("revision", flags.Lookup("revision")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".mcugen" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mcugen")
	}

	// MCUGEN_LOG_LEVEL overrides log.level and so on
	viper.SetEnvPrefix("mcugen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Command output goes to stdout. Log coloring is decided on stderr by common.Logger
	logging.ConfigureColor(os.Stdout)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
