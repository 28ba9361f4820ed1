package main

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spetersoncode/gitscribe/client"
	"github.com/spetersoncode/gitscribe/config"
	"github.com/spetersoncode/gitscribe/generate"
	"github.com/spetersoncode/gitscribe/git"
	"github.com/spetersoncode/gitscribe/internal/logging"
	"github.com/spetersoncode/gitscribe/internal/ui"
	"github.com/spetersoncode/gitscribe/resolve"
	"github.com/spetersoncode/gitscribe/secrets"
	"github.com/spetersoncode/gitscribe/workflow"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gitscribe",
		Short: "Generate commit messages for staged changes with a language model",
		Long: `gitscribe reads the staged diff, asks a language model for a commit message,
checks the message format and commits it. With --compare it asks every model
with a configured credential and shows the results side by side instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
		RunE: runCommit,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newModelsCmd(), newMCPCmd(), newVersionCmd())
	return root
}

// setup loads the configuration and builds the logger for one invocation.
func setup(cmd *cobra.Command) (config.Workflow, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Workflow{}, nil, err
	}

	level := cfg.LogLevel
	if cfg.Debug().Any() && level == "warn" {
		level = "info"
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return config.Workflow{}, nil, err
	}
	return cfg, log.With(zap.String("run_id", uuid.NewString())), nil
}

func runCommit(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	events := make(chan client.Event, 64)
	done := logEvents(log, events)
	defer func() {
		close(events)
		<-done
	}()

	in := cmd.InOrStdin()
	prompter := ui.NewPrompter(in, cmd.OutOrStdout())
	printer := ui.NewPrinter(cmd.OutOrStdout())

	gen := generate.New(
		client.New(client.Config{Events: events}),
		generate.WithLogger(log),
		generate.WithDebug(cfg.Debug()),
	)
	scanner := secrets.New(
		secrets.Interactive(isTerminal(in)),
		secrets.WithConfirmer(prompter),
		secrets.WithLogger(log),
	)

	seq := workflow.New(cfg, workflow.Deps{
		Open:      openRepo,
		Resolver:  resolve.New(),
		Generator: gen,
		Scanner:   scanner,
		Confirmer: prompter,
		Printer:   printer,
	}, workflow.WithLogger(log))

	res := seq.Run(cmd.Context(), dir)
	if res.Termination == workflow.TerminationAborted {
		return res.Err
	}
	return nil
}

func openRepo(dir string) (workflow.Git, error) {
	return git.Open(dir)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && ui.IsTerminal(f)
}

// logEvents logs client events until events is closed, then closes the
// returned channel.
func logEvents(log *zap.Logger, events <-chan client.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fields := []zap.Field{zap.String("route", ev.Route)}
			switch ev.Type {
			case client.EventRequestStart:
				log.Debug("request started", fields...)
			case client.EventRequestComplete:
				fields = append(fields, zap.Duration("duration", ev.Duration))
				if ev.Usage != nil {
					fields = append(fields, zap.Int("tokens", ev.Usage.Total()))
				}
				log.Debug("request complete", fields...)
			case client.EventRequestError:
				log.Warn("request failed", append(fields, zap.Duration("duration", ev.Duration), zap.Error(ev.Error))...)
			case client.EventRetry:
				if ev.Retry != nil {
					fields = append(fields, zap.Int("attempt", ev.Retry.Attempt), zap.Duration("delay", ev.Retry.Delay), zap.Error(ev.Retry.Err))
				}
				log.Info("retrying request", fields...)
			}
		}
	}()
	return done
}
