// Package config assembles the workflow configuration from command-line
// flags, GITSCRIBE_* environment variables and the optional project file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/model"
	"github.com/spetersoncode/gitscribe/resolve"
)

// EnvPrefix prefixes every environment variable that can set a flag.
const EnvPrefix = "GITSCRIBE"

// Flag names.
const (
	FlagAutoAdd        = "auto-add"
	FlagAutoCommit     = "auto-commit"
	FlagAutoPush       = "auto-push"
	FlagDisableAdd     = "disable-add"
	FlagDisableStatus  = "disable-status"
	FlagDisablePreview = "disable-preview"
	FlagDisableCommit  = "disable-commit"
	FlagDisablePush    = "disable-push"
	FlagSilent         = "silent"
	FlagNoVerify       = "no-verify"
	FlagForce          = "force"
	FlagPrefix         = "add-prefix"
	FlagSuffix         = "add-suffix"
	FlagExcludeModels  = "exclude-models"
	FlagModel          = "model"
	FlagPreferRouter   = "prefer-router"
	FlagCompare        = "compare"
	FlagNoSecretCheck  = "no-secret-check"
	FlagExtraPrompt    = "extra-prompt"
	FlagDebugPrompts   = "debug-prompts"
	FlagDebugInputs    = "debug-inputs"
	FlagDebugOutputs   = "debug-outputs"
	FlagLogLevel       = "log-level"
)

// Workflow is the flat configuration of one run.
type Workflow struct {
	AutoAdd        bool     `mapstructure:"auto-add"`
	AutoCommit     bool     `mapstructure:"auto-commit"`
	AutoPush       bool     `mapstructure:"auto-push"`
	DisableAdd     bool     `mapstructure:"disable-add"`
	DisableStatus  bool     `mapstructure:"disable-status"`
	DisablePreview bool     `mapstructure:"disable-preview"`
	DisableCommit  bool     `mapstructure:"disable-commit"`
	DisablePush    bool     `mapstructure:"disable-push"`
	Silent         bool     `mapstructure:"silent"`
	NoVerify       bool     `mapstructure:"no-verify"`
	Force          bool     `mapstructure:"force"`
	Prefix         string   `mapstructure:"add-prefix"`
	Suffix         string   `mapstructure:"add-suffix"`
	ExcludeModels  string   `mapstructure:"exclude-models"`
	Model          string   `mapstructure:"model"`
	PreferRouter   bool     `mapstructure:"prefer-router"`
	Compare        bool     `mapstructure:"compare"`
	NoSecretCheck  bool     `mapstructure:"no-secret-check"`
	ExtraPrompts   []string `mapstructure:"extra-prompt"`
	DebugPrompts   bool     `mapstructure:"debug-prompts"`
	DebugInputs    bool     `mapstructure:"debug-inputs"`
	DebugOutputs   bool     `mapstructure:"debug-outputs"`
	LogLevel       string   `mapstructure:"log-level"`
}

// Debug returns the enabled debug channels.
func (w Workflow) Debug() ai.Debug {
	return ai.Debug{Prompts: w.DebugPrompts, Inputs: w.DebugInputs, Outputs: w.DebugOutputs}
}

// Exclusions returns the trimmed, non-empty model exclusion substrings.
func (w Workflow) Exclusions() []string {
	return resolve.ParseExclusions(w.ExcludeModels)
}

// SecretCheck reports whether the diff is scanned before generation.
func (w Workflow) SecretCheck() bool {
	return !w.NoSecretCheck
}

// RegisterFlags defines every workflow flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagAutoAdd, false, "stage all changes without asking when nothing is staged")
	fs.Bool(FlagAutoCommit, false, "commit without asking")
	fs.Bool(FlagAutoPush, false, "push without asking")
	fs.Bool(FlagDisableAdd, false, "never stage changes")
	fs.Bool(FlagDisableStatus, false, "do not list staged files")
	fs.Bool(FlagDisablePreview, false, "do not show the generated message before committing")
	fs.Bool(FlagDisableCommit, false, "generate the message but do not commit")
	fs.Bool(FlagDisablePush, false, "do not push after committing")
	fs.Bool(FlagSilent, false, "suppress status and preview output")
	fs.Bool(FlagNoVerify, false, "skip git hooks when committing and pushing")
	fs.Bool(FlagForce, false, "push with --force-with-lease")
	fs.String(FlagPrefix, "", "text prepended to the summary line")
	fs.String(FlagSuffix, "", "text appended to the summary line")
	fs.String(FlagExcludeModels, "", "comma-separated substrings of model names to skip in comparison mode")
	fs.String(FlagModel, string(model.Default.Name()), "model used to generate the message")
	fs.Bool(FlagPreferRouter, false, "try router routes before the direct provider")
	fs.Bool(FlagCompare, false, "generate with every available model and compare without committing")
	fs.Bool(FlagNoSecretCheck, false, "do not scan the diff for secrets")
	fs.StringArray(FlagExtraPrompt, nil, "additional instruction for the model (repeatable)")
	fs.Bool(FlagDebugPrompts, false, "log the system prompt")
	fs.Bool(FlagDebugInputs, false, "log the user prompt")
	fs.Bool(FlagDebugOutputs, false, "log the raw model output")
	fs.String(FlagLogLevel, "warn", "log level (debug, info, warn, error)")
}

// Load reads the flags in fs, letting GITSCRIBE_* environment variables
// fill any flag not given on the command line.
func Load(fs *pflag.FlagSet) (Workflow, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Workflow{}, fmt.Errorf("bind flags: %w", err)
	}

	var w Workflow
	if err := v.Unmarshal(&w); err != nil {
		return Workflow{}, fmt.Errorf("unmarshal config: %w", err)
	}
	w.Model = strings.TrimSpace(w.Model)

	if err := w.Validate(); err != nil {
		return Workflow{}, err
	}
	return w, nil
}

// ErrConflictingFlags is returned by Validate for contradictory options.
var ErrConflictingFlags = errors.New("conflicting flags")

// Validate rejects flag combinations that ask for and against the same step.
func (w Workflow) Validate() error {
	pairs := []struct {
		on, off bool
		onName  string
		offName string
	}{
		{w.AutoAdd, w.DisableAdd, FlagAutoAdd, FlagDisableAdd},
		{w.AutoCommit, w.DisableCommit, FlagAutoCommit, FlagDisableCommit},
		{w.AutoPush, w.DisablePush, FlagAutoPush, FlagDisablePush},
	}
	for _, p := range pairs {
		if p.on && p.off {
			return fmt.Errorf("%w: --%s and --%s", ErrConflictingFlags, p.onName, p.offName)
		}
	}
	if w.Model == "" && !w.Compare {
		return errors.New("no model selected")
	}
	return nil
}
