package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"imovel-searcher/internal/config"
	"imovel-searcher/internal/repository"
	"imovel-searcher/internal/service"
)

func newSearchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <pergunta>",
		Short: "Search the listings catalog with a natural-language question",
		Example: `  buscar search "apartamento 2 quartos em Copacabana"
  buscar search --max-pages 5 --per-page 50 "casa com piscina"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := question(args)
			if q == "" {
				return errors.New(`envie "pergunta" com o texto da busca`)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-pages") {
				cfg.Search.MaxPages = min(opts.maxPages, config.MaxSearchPages)
			}
			if cmd.Flags().Changed("per-page") {
				cfg.Search.PerPage = opts.perPage
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			repo := repository.NewListingRepository(cfg.Listings, logger)
			searchService := service.NewSearchService(repo, opts.extractor(cfg, logger), service.SearchOptions{
				MaxPages:    cfg.Search.MaxPages,
				PerPage:     cfg.Search.PerPage,
				ResultLimit: cfg.Search.ResultLimit,
			}, logger)

			response, err := searchService.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), response)
		},
	}

	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, fmt.Sprintf("catalog pages to read, at most %d (defaults to BUSCAR_MAX_PAGINAS)", config.MaxSearchPages))
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "listings per catalog page (defaults to BUSCAR_POR_PAGINA)")
	return cmd
}
