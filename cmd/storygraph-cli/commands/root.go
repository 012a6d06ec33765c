package commands

import (
	"context"
	"fmt"
	"os"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/scrapers/storygraph"
	"storygraph-backend/lib/serviceutil"
	libtelemetry "storygraph-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storygraph-cli",
	Short: "A CLI for scraping and syncing a StoryGraph account.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().String("config", "storygraph.json5", "The path to the config file.")
}

func ExecuteContext(ctx context.Context) {
	providers, err := libtelemetry.SetupFromEnv(ctx, "storygraph-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer providers.Shutdown(context.Background())

	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is everything a command needs to talk to StoryGraph.
type env struct {
	config  Config
	scraper *storygraph.Scraper
	api     storygraph.API
}

func loadEnv(cmd *cobra.Command) env {
	path, _ := cmd.Flags().GetString("config")
	config, err := readConfig(path)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	tel := telemetry.SlogAPI{}
	fetcher, err := storygraph.NewFetcher(storygraph.ClientOptions{
		BaseUrl: config.BaseUrl,
		Cookies: config.Cookies,
		Timeout: config.timeout(),
	}, tel)
	if err != nil {
		serviceutil.Fatal("failed to create fetcher", err)
	}
	scraper := storygraph.NewScraper(fetcher, storygraph.CrawlOptions{
		MaxPages: config.maxPages(),
	}, tel)

	return env{
		config:  config,
		scraper: scraper,
		api:     storygraph.NewDefaultAPI(scraper),
	}
}

// username returns the first argument if present, otherwise the configured
// username.
func (e env) username(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if e.config.Username == "" {
		serviceutil.Fatal("no username", fmt.Errorf("pass one as an argument or set %s", envUsername))
	}
	return e.config.Username
}
