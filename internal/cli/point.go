package cli

import (
	"github.com/spf13/cobra"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/repository/postgres"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

func newPointCmd(opts *rootOptions) *cobra.Command {
	var (
		accidentsFile  string
		crosswalksFile string
		lat, lon       float64
		radius         float64
		year           int
	)

	cmd := &cobra.Command{
		Use:   "point",
		Short: "Analyze risk and crosswalk safety around a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accidents, err := readAccidents(accidentsFile)
			if err != nil {
				return err
			}
			crosswalks, err := readCrosswalks(crosswalksFile)
			if err != nil {
				return err
			}

			repo := postgres.NewMockRepositoryFrom(accidents, crosswalks)
			svc := service.NewRiskService(repo, opts.scorer, false)

			analysis, err := svc.AnalyzePoint(cmd.Context(), lat, lon, radius, year)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVar(&accidentsFile, "accidents", "", "JSON file with accident records")
	cmd.Flags().StringVar(&crosswalksFile, "crosswalks", "", "JSON file with crosswalk facilities")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the location")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the location")
	cmd.Flags().Float64Var(&radius, "radius", service.DefaultRadiusMeters, "crosswalk search radius in meters")
	cmd.Flags().IntVar(&year, "year", 0, "only use accidents from this year")
	_ = cmd.MarkFlagRequired("accidents")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}
