package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tourism-cli/internal/config"
	"github.com/sells-group/tourism-cli/internal/fetcher"
)

var fetchOnly string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the configured raw data files",
	Long: `Downloads every fetch.sources entry over HTTP(S) or FTP into its dest path,
a few at a time. Sources marked unzip are extracted next to the archive.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		sources := selectSources(cfg.Fetch.Sources, splitAndTrim(fetchOnly))
		if len(sources) == 0 {
			return eris.Errorf("fetch: no source matches %q", fetchOnly)
		}

		timeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second
		router := &fetcher.Router{
			HTTP: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
				UserAgent:  cfg.Fetch.UserAgent,
				Timeout:    timeout,
				MaxRetries: cfg.Fetch.MaxRetries,
			}),
			FTP: fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
		}

		log := zap.L().With(zap.String("command", "fetch"))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Fetch.Concurrency)
		for _, src := range sources {
			g.Go(func() error {
				f, err := router.For(src.URL)
				if err != nil {
					return eris.Wrapf(err, "fetch: %s", src.Name)
				}
				n, err := f.DownloadToFile(gctx, src.URL, src.Dest)
				if err != nil {
					return eris.Wrapf(err, "fetch: %s", src.Name)
				}
				log.Info("downloaded", zap.String("source", src.Name), zap.String("dest", src.Dest), zap.Int64("bytes", n))

				if src.Unzip {
					files, err := fetcher.ExtractZIP(src.Dest, filepath.Dir(src.Dest))
					if err != nil {
						return eris.Wrapf(err, "fetch: %s", src.Name)
					}
					log.Info("extracted", zap.String("source", src.Name), zap.Strings("files", files))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Fetched %d sources\n", len(sources))
		return nil
	},
}

// selectSources keeps the sources named in only, or all of them when only is empty.
func selectSources(all []config.SourceConfig, only []string) []config.SourceConfig {
	if len(only) == 0 {
		return all
	}
	var out []config.SourceConfig
	for _, s := range all {
		for _, name := range only {
			if strings.EqualFold(s.Name, name) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOnly, "only", "", "comma-separated source names to fetch (default: all)")
	rootCmd.AddCommand(fetchCmd)
}
