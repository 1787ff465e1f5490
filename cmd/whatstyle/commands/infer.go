/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: The "infer" command: runs the search engine's standard or resilient
mode against a formatter and a reference corpus, printing the selected style.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/cache"
	"github.com/kleascm/whatstyle-go/pkg/evaluator"
	"github.com/kleascm/whatstyle-go/pkg/monitoring"
	"github.com/kleascm/whatstyle-go/pkg/reporting"
	"github.com/kleascm/whatstyle-go/pkg/search"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RunInfer implements `whatstyle infer`.
func RunInfer(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	formatterName := viper.GetString("formatter")
	binary := viper.GetString("formatter_binary")
	extraArgs := viper.GetString("formatter_args")
	modeFlag := viper.GetString("mode")
	concurrency := viper.GetInt("concurrency")
	diffBackend := viper.GetString("diff_backend")
	timeout := viper.GetDuration("timeout")
	cacheBytes := viper.GetInt64("cache_bytes")

	f, err := BuildFormatter(formatterName, binary, extraArgs, timeout)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	metric, err := BuildMetric(diffBackend, timeout)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	c, err := cache.New(cacheBytes)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	defer c.Close()

	ev, err := evaluator.New(f, metric, c, concurrency, timeout)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}

	sources, err := LoadSources(args, os.ReadFile)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("infer: at least one source file is required")
	}

	logger, err := BuildLogger()
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	defer logger.Close()

	metrics := monitoring.NewSearchMetrics(nil)

	engine := search.New(f, ev, sources, logger)

	mode := search.ModeStandard
	if modeFlag == "resilient" {
		mode = search.ModeResilient
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout*time.Duration(len(sources)*20+1))
	defer cancel()

	report, err := engine.Run(ctx, mode)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	if report.Warning != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", report.Warning)
	}

	hits, misses := c.Stats()
	metrics.ObserveCacheStats(hits, misses)
	logger.LogCacheStats(hits, misses, nil)
	metrics.BestDistance.WithLabelValues(string(mode)).Set(float64(report.Best.AggregateDist))
	metrics.SearchRoundsTotal.WithLabelValues(string(mode)).Inc()
	outcome := "converged"
	if report.Warning != nil {
		outcome = "warning"
	}
	metrics.EvaluationsTotal.WithLabelValues(formatterName, outcome).Add(float64(len(sources)))
	logger.LogCandidate(string(mode), report.Best.Style.Fingerprint(), report.Best.AggregateDist, report.Best.Style.Cardinality(), nil)

	doc := map[string]interface{}{"BasedOnStyle": report.Best.Style.BaseName}
	for k, v := range report.Best.Style.Values {
		doc[k] = v
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	fmt.Fprintln(cmd.ErrOrStderr(), reporting.SummaryLine(report.Best))

	return nil
}
