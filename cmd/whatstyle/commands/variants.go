/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variants.go
Description: The "variants" command: runs the search engine's Phase D
exploration and renders every distinguishable option alternative, either as
an ANSI terminal report or as a self-contained HTML page.
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
)

// RunVariants implements `whatstyle variants`.
func RunVariants(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	formatterName := viper.GetString("formatter")
	binary := viper.GetString("formatter_binary")
	extraArgs := viper.GetString("formatter_args")
	concurrency := viper.GetInt("concurrency")
	diffBackend := viper.GetString("diff_backend")
	timeout := viper.GetDuration("timeout")
	cacheBytes := viper.GetInt64("cache_bytes")
	asHTML := viper.GetBool("html")

	f, err := BuildFormatter(formatterName, binary, extraArgs, timeout)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	metric, err := BuildMetric(diffBackend, timeout)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	c, err := cache.New(cacheBytes)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	defer c.Close()

	ev, err := evaluator.New(f, metric, c, concurrency, timeout)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}

	sources, err := LoadSources(args, os.ReadFile)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("variants: at least one source file is required")
	}

	logger, err := BuildLogger()
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	defer logger.Close()

	metrics := monitoring.NewSearchMetrics(nil)

	engine := search.New(f, ev, sources, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout*time.Duration(len(sources)*20+1))
	defer cancel()

	report, err := engine.Run(ctx, search.ModeVariants)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}

	hits, misses := c.Stats()
	metrics.ObserveCacheStats(hits, misses)
	logger.LogCacheStats(hits, misses, nil)
	metrics.BestDistance.WithLabelValues(string(search.ModeVariants)).Set(float64(report.Best.AggregateDist))
	metrics.SearchRoundsTotal.WithLabelValues(string(search.ModeVariants)).Inc()
	metrics.EvaluationsTotal.WithLabelValues(formatterName, "converged").Add(float64(len(sources)))
	logger.LogCandidate(string(search.ModeVariants), report.Best.Style.Fingerprint(), report.Best.AggregateDist, report.Best.Style.Cardinality(), nil)

	if asHTML {
		return reporting.RenderHTMLVariants(cmd.OutOrStdout(), report.Best, report.Variants)
	}
	reporting.RenderANSIVariants(cmd.OutOrStdout(), report.Best, report.Variants)
	return nil
}
