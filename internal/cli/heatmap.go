package cli

import (
	"github.com/spf13/cobra"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/repository/postgres"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

func newHeatmapCmd(opts *rootOptions) *cobra.Command {
	var (
		accidentsFile  string
		crosswalksFile string
		bounds         domain.Bounds
		year           int
		asGeoJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Generate scored region points for a heatmap overlay",
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

			if asGeoJSON {
				fc, err := svc.HeatmapGeoJSON(cmd.Context(), bounds, year)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), fc)
			}

			hm, err := svc.Heatmap(cmd.Context(), bounds, year)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), hm)
		},
	}

	cmd.Flags().StringVar(&accidentsFile, "accidents", "", "JSON file with accident records")
	cmd.Flags().StringVar(&crosswalksFile, "crosswalks", "", "JSON file with crosswalk facilities")
	cmd.Flags().Float64Var(&bounds.South, "south", 0, "southern latitude bound")
	cmd.Flags().Float64Var(&bounds.West, "west", 0, "western longitude bound")
	cmd.Flags().Float64Var(&bounds.North, "north", 0, "northern latitude bound")
	cmd.Flags().Float64Var(&bounds.East, "east", 0, "eastern longitude bound")
	cmd.Flags().IntVar(&year, "year", 0, "only use accidents from this year")
	cmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "emit a GeoJSON FeatureCollection")
	_ = cmd.MarkFlagRequired("accidents")

	return cmd
}
