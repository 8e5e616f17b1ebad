package commands

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/services/config"
	"github.com/de-tools/survey-atlas/pkg/services/pipeline"
	"github.com/de-tools/survey-atlas/pkg/store/survey"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RunCmd struct {
	profilePath string
	registry    survey.Registry
}

func NewRunCmd(registry survey.Registry) *cobra.Command {
	rc := &RunCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clean a survey export and write every configured summary report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.profilePath, "config", "c", "", "Path to the survey profile (YAML)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := config.LoadConfig(rc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", rc.profilePath, err)
	}
	logger.Info().Msgf("Profile found at `%s` successfully loaded.", rc.profilePath)

	loader := survey.NewLoader(rc.registry, inputSettings(cfg.Input))
	result, err := pipeline.NewRunner(cfg, loader, nil).Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Eligible respondents: %d\nCompleted respondents: %d\n", result.Eligible, result.Completed)
	for _, a := range result.Artifacts {
		if a.Outcome == "" {
			fmt.Fprintf(out, "- %s: %s (%d rows)\n", a.Name, a.Path, a.Rows)
			continue
		}
		fmt.Fprintf(out, "- %s [%s]: %s (%d rows)\n", a.Name, a.Outcome, a.Path, a.Rows)
	}
	return nil
}

func inputSettings(in config.InputConfig) survey.Settings {
	return survey.Settings{
		Format:        in.Format,
		Sheet:         in.Sheet,
		HeaderRow:     in.HeaderRow,
		SkipRows:      in.SkipRows,
		IndexColumn:   in.IndexColumn,
		MissingValues: in.MissingValues,
	}
}
