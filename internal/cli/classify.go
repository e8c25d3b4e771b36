package cli

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
)

func newClassifyCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "classify <score>",
		Short: "Map a 0-100 score to its label and tone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return eris.Wrapf(domain.ErrInvalidInput, "cli: score %q is not a number", args[0])
			}

			c, err := scoring.Classify(score, domain.ScoreKind(kind))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.KindRisk), "score kind: risk or safety")

	return cmd
}
