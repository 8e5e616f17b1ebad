package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "SURVEY_ATLAS"

// Config is a survey pipeline profile
type Config struct {
	Input       InputConfig       `mapstructure:"input" validate:"required"`
	Cleaning    CleaningConfig    `mapstructure:"cleaning"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Output      OutputConfig      `mapstructure:"output" validate:"required"`
	Reports     []ReportConfig    `mapstructure:"reports" validate:"required,min=1,dive"`
}

type InputConfig struct {
	Path          string   `mapstructure:"path" validate:"required"`
	Format        string   `mapstructure:"format" validate:"omitempty,oneof=csv xlsx"`
	Sheet         string   `mapstructure:"sheet"`
	HeaderRow     int      `mapstructure:"header_row" validate:"gte=0"`
	SkipRows      int      `mapstructure:"skip_rows" validate:"gte=0"`
	IndexColumn   bool     `mapstructure:"index_column"`
	MissingValues []string `mapstructure:"missing_values"`
}

type CleaningConfig struct {
	// DropColumns are removed right after loading: identifying fields, metadata, consent text
	DropColumns []string `mapstructure:"drop_columns"`
	Eligibility *Match   `mapstructure:"eligibility"`
	// DropTextColumns are free-text answers removed after the eligibility filter
	DropTextColumns []string       `mapstructure:"drop_text_columns"`
	Completion      *Match         `mapstructure:"completion"`
	Renames         []RenameConfig `mapstructure:"renames" validate:"dive"`
}

type Match struct {
	Column string `mapstructure:"column" validate:"required"`
	Value  string `mapstructure:"value" validate:"required"`
}

type RenameConfig struct {
	Column string `mapstructure:"column" validate:"required"`
	From   string `mapstructure:"from" validate:"required"`
	To     string `mapstructure:"to" validate:"required"`
}

type AggregationConfig struct {
	Separator string `mapstructure:"separator"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=csv xlsx"`
	// CleanedTable is the file name for the cleaned table of completed respondents
	CleanedTable string `mapstructure:"cleaned_table"`
}

type ReportConfig struct {
	Name    string            `mapstructure:"name" validate:"required"`
	Title   string            `mapstructure:"title"`
	Columns []string          `mapstructure:"columns" validate:"required,min=1"`
	Outputs map[string]string `mapstructure:"outputs" validate:"required,min=1,dive,keys,oneof=completed all,endkeys,required"`
}

// Targets lists the report's artifacts, completed respondents first
func (r ReportConfig) Targets() []domain.ReportTarget {
	var targets []domain.ReportTarget
	for _, outcome := range []domain.Outcome{domain.OutcomeCompleted, domain.OutcomeAll} {
		if path, ok := r.Outputs[string(outcome)]; ok {
			targets = append(targets, domain.ReportTarget{Name: r.Name, Outcome: outcome, Path: path})
		}
	}
	return targets
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.header_row", 1)
	v.SetDefault("input.skip_rows", 1)
	v.SetDefault("input.index_column", true)
	v.SetDefault("aggregation.separator", ",")
	v.SetDefault("output.dir", ".")
}

// LoadConfig reads a YAML profile; SURVEY_ATLAS_* variables override scalar keys,
// e.g. SURVEY_ATLAS_INPUT_PATH
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse survey config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the profile's validate tags and cross-field rules
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid survey config: %w", err)
	}

	names := make(map[string]struct{}, len(cfg.Reports))
	for _, r := range cfg.Reports {
		if _, dup := names[r.Name]; dup {
			return fmt.Errorf("invalid survey config: duplicate report name %q", r.Name)
		}
		names[r.Name] = struct{}{}

		if _, ok := r.Outputs[string(domain.OutcomeCompleted)]; ok && cfg.Cleaning.Completion == nil {
			return fmt.Errorf("invalid survey config: report %q writes completed respondents but cleaning.completion is not set", r.Name)
		}
	}
	return nil
}
