package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imovel-searcher/internal/config"
	"imovel-searcher/internal/observability"
	"imovel-searcher/internal/service"
)

// options are the flags shared by every subcommand
type options struct {
	cfgFile   string
	heuristic bool
	verbose   bool
	maxPages  int
	perPage   int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "buscar",
		Short: "Busca de imóveis em linguagem natural",
		Long: `buscar turns a question such as "apartamento 2 quartos em Copacabana até 500 mil"
into search criteria and filters the listings catalog with them, using the same
configuration as the HTTP server (.env, CONFIG_FILE and environment variables).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "YAML config file path (defaults to $CONFIG_FILE)")
	rootCmd.PersistentFlags().BoolVar(&opts.heuristic, "heuristic", false, "skip the language model and use the heuristic extractor")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newCriteriosCmd(opts))
	return rootCmd
}

// loadConfig reads the configuration without validating it; commands that
// reach the catalog validate it themselves.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	return config.Read(path)
}

func (o *options) logger(cfg *config.Config) (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	return observability.NewLogger(cfg.Logging.Level, "console")
}

func (o *options) extractor(cfg *config.Config, logger *zap.Logger) *service.CriteriaExtractor {
	var aiClient service.CompletionClient
	if !o.heuristic {
		aiClient = service.NewCompletionClient(&cfg.OpenAI)
	}
	return service.NewCriteriaExtractor(aiClient, logger)
}

func question(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
