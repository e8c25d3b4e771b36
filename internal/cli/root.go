// Package cli implements riskctl, an offline front end to the scoring engine
// that reads accident and crosswalk records from JSON files.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/config"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
)

type rootOptions struct {
	cfgFile string
	scorer  *scoring.Scorer
}

// NewRootCmd builds the riskctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Scores pedestrian accident risk and crosswalk safety",
		Long:          `riskctl runs the crosswalk risk scoring engine over JSON exports of accident statistics and crosswalk facilities.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		newPointCmd(opts),
		newHeatmapCmd(opts),
		newClassifyCmd(),
	)
	return root
}

func (o *rootOptions) init() error {
	config.LoadDotEnv()

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return err
	}
	sc, err := cfg.Scoring.ToScoring()
	if err != nil {
		return err
	}
	o.scorer, err = scoring.New(sc)
	return err
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readAccidents(path string) ([]domain.AccidentRecord, error) {
	var records []domain.AccidentRecord
	if err := readJSON(path, &records); err != nil {
		return nil, eris.Wrapf(err, "cli: read accidents %s", path)
	}
	return records, nil
}

func readCrosswalks(path string) ([]domain.CrosswalkFacility, error) {
	if path == "" {
		return []domain.CrosswalkFacility{}, nil
	}
	var facilities []domain.CrosswalkFacility
	if err := readJSON(path, &facilities); err != nil {
		return nil, eris.Wrapf(err, "cli: read crosswalks %s", path)
	}
	return facilities, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
