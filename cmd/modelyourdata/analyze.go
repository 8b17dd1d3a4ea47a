package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raliaaaaamadou/model-your-data/pkg/analyze"
	"github.com/Raliaaaaamadou/model-your-data/pkg/logger"
	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Run one analysis operation against a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("operation", "o", string(analyze.OpSummary), "operation to run")
	analyzeCmd.Flags().StringArrayP("param", "p", nil, "operation parameter as key=value (repeatable)")
	_ = viper.BindPFlag("operation", analyzeCmd.Flags().Lookup("operation"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log, err := logger.New(viper.GetString("log-level"), viper.GetBool("dev"))
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	var store *render.Store
	if dir := viper.GetString("artifacts"); dir != "" {
		store = render.NewStore(dir, render.SlotPolicy(viper.GetString("slot-policy")))
	}

	op, _ := cmd.Flags().GetString("operation")
	rawParams, err := parseParamFlags(cmd)
	if err != nil {
		return err
	}

	runner := analyze.NewRunner(log, store)
	res, err := runner.AnalyzeFile(args[0], op, rawParams)
	if err != nil {
		return err
	}

	out := map[string]any{
		"operation": res.Op,
		"stats":     res.Stats,
	}
	if res.Table != nil {
		out["table"] = res.Table
	}
	if res.Image != nil {
		out["image_base64"] = res.Image.Base64
		if res.Image.Path != "" {
			out["image_path"] = res.Image.Path
		}
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(enc))
	return nil
}

func parseParamFlags(cmd *cobra.Command) (map[string]string, error) {
	pairs, _ := cmd.Flags().GetStringArray("param")
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --param %q: want key=value", pair)
		}
		params[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return params, nil
}
