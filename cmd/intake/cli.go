package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/valeshop/access-intake/internal/intake"
	"github.com/valeshop/access-intake/internal/logger"
	"github.com/valeshop/access-intake/internal/model"
)

// RelayURLEnv overrides the default relay URL.
const RelayURLEnv = "ACCESS_RELAY_URL"

// Exit codes.
const (
	exitOK         = 0
	exitFailed     = 1
	exitValidation = 2
)

type options struct {
	name         string
	email        string
	reason       string
	duration     string
	application  string
	relayURL     string
	timeout      time.Duration
	validateOnly bool
	verbose      bool
}

// run executes the intake command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, intake.ErrValidationFailed) {
			return exitValidation
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailed
	}
	return exitOK
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	relayURL := os.Getenv(RelayURLEnv)
	if relayURL == "" {
		relayURL = intake.DefaultRelayURL
	}

	cmd := &cobra.Command{
		Use:           "intake",
		Short:         "Submit a temporary access request",
		Long:          "Submit a temporary access request to the access relay.\n\nApplications: " + strings.Join(model.Applications, ", "),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submit(cmd.Context(), opts, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "Requester full name")
	flags.StringVarP(&opts.email, "email", "e", "", "Requester email")
	flags.StringVarP(&opts.reason, "reason", "r", "", "Why the access is needed")
	flags.StringVarP(&opts.duration, "duration", "d", "", "Requested access duration in hours")
	flags.StringVarP(&opts.application, "application", "a", "", "Target application")
	flags.StringVar(&opts.relayURL, "relay-url", relayURL, "Relay endpoint URL (env "+RelayURLEnv+")")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "Submission timeout, 0 for none")
	flags.BoolVar(&opts.validateOnly, "validate-only", false, "Validate the request without submitting it")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log the submission")

	return cmd
}

func newCLILogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: logger.TimeFormat}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func submit(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	log := newCLILogger(stderr, opts.verbose)

	form := intake.NewForm()
	values := map[intake.Field]string{
		intake.FieldRequesterName:  opts.name,
		intake.FieldRequesterEmail: opts.email,
		intake.FieldReason:         opts.reason,
		intake.FieldDurationHours:  opts.duration,
		intake.FieldApplication:    opts.application,
	}
	for field, value := range values {
		if err := form.Set(field, value); err != nil {
			return err
		}
	}

	if opts.validateOnly {
		if !form.Validate() {
			printFieldErrors(stdout, form)
			return intake.ErrValidationFailed
		}
		fmt.Fprintln(stdout, "OK")
		return nil
	}

	client := intake.NewRelayClient(opts.relayURL, intake.WithTimeout(opts.timeout))

	log.Debug().
		Str("relay_url", opts.relayURL).
		Str("application", opts.application).
		Msg("submitting access request")

	err := form.Submit(ctx, client)

	switch status := form.Status().(type) {
	case intake.Succeeded:
		fmt.Fprintln(stdout, status.Message)
		return nil

	case intake.Failed:
		log.Debug().Err(err).Stringer("kind", status.Kind).Msg("submission failed")
		fmt.Fprintln(stdout, status.Message)
		return errors.Wrap(err, "submission failed")
	}

	if errors.Is(err, intake.ErrValidationFailed) {
		printFieldErrors(stdout, form)
	}
	return err
}

// printFieldErrors writes one "field: message" line per failing field in form order.
func printFieldErrors(w io.Writer, form *intake.Form) {
	for _, name := range model.Fields {
		field := intake.Field(name)
		if msg := form.Error(field); msg != "" {
			fmt.Fprintf(w, "%s: %s\n", field, msg)
		}
	}
}
