package main

import (
	"github.com/spf13/cobra"
)

func newCriteriosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "criterios <pergunta>",
		Aliases: []string{"criteria"},
		Short:   "Print the criteria extracted from a question",
		Example: `  buscar criterios "casa com 3 quartos no Leblon"
  buscar criterios --heuristic "apartamento até 500 mil"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			criteria := opts.extractor(cfg, logger).Extract(cmd.Context(), question(args))
			return writeJSON(cmd.OutOrStdout(), criteria)
		},
	}
}
