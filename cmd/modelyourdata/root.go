package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raliaaaaamadou/model-your-data/pkg/analyze"
)

var rootCmd = &cobra.Command{
	Use:   "modelyourdata",
	Short: "Exploratory analysis of CSV datasets",
	Long: `modelyourdata loads a CSV file and runs one of the analysis
operations against it, producing a PNG visualization and a JSON stats
payload.`,
	SilenceUsage: true,
}

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the available analysis operations",
	Run: func(cmd *cobra.Command, args []string) {
		for _, op := range analyze.Operations() {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("dev", false, "development logging (console encoder)")
	rootCmd.PersistentFlags().String("artifacts", "", "directory for the on-disk artifact copy (empty disables)")
	rootCmd.PersistentFlags().String("slot-policy", "shared", "artifact slot policy: shared or per-operation")

	viper.SetEnvPrefix("MYD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(operationsCmd)
	rootCmd.AddCommand(analyzeCmd)
}
