package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	flag "github.com/spf13/pflag"

	"rainseason/internal/config"
	"rainseason/internal/creds"
	"rainseason/internal/logging"
	"rainseason/internal/mail"
	"rainseason/internal/rainfall"
	"rainseason/internal/rainfall/providers"
	"rainseason/internal/report"
)

var validate = validator.New()

// options is the validated flag payload.
type options struct {
	Start   string `validate:"omitempty,datetime=2006-01-02"`
	End     string `validate:"omitempty,datetime=2006-01-02"`
	Email   string `validate:"omitempty,email"`
	Station string `validate:"required"`

	JSON       bool
	CSV        bool
	SetupEmail bool
	Debug      bool
}

func main() {
	opts, cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	if err := run(opts, cfg); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func parseFlags() (options, *config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return options{}, nil, err
	}

	var opts options
	flag.StringVar(&opts.Start, "start", "", "override start date (YYYY-MM-DD); default: Oct 1 of the current rain season")
	flag.StringVar(&opts.End, "end", "", "override end date (YYYY-MM-DD); default: today")
	flag.StringVar(&opts.Email, "email", "", "email the report to this address (run --setup-email first)")
	flag.StringVar(&opts.Station, "station", cfg.StationID, "GHCND station ID to query")
	flag.BoolVar(&opts.JSON, "json", false, "output the report as JSON")
	flag.BoolVar(&opts.CSV, "csv", false, "output the report as CSV")
	flag.BoolVar(&opts.SetupEmail, "setup-email", false, "store SMTP credentials in the platform credential store, then exit")
	flag.BoolVar(&opts.Debug, "debug", false, "log the raw API request and response")
	flag.Parse()

	if err := validate.Struct(opts); err != nil {
		return options{}, nil, err
	}

	// A station override also overrides the display name.
	if opts.Station != cfg.StationID {
		cfg.StationID = opts.Station
		cfg.StationName = opts.Station
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	return opts, cfg, nil
}

func run(opts options, cfg *config.AppConfig) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if opts.SetupEmail {
		return creds.Setup(creds.NewKeyringStore(), os.Stdin, os.Stdout)
	}

	rng, err := rainfall.ResolveRange(opts.Start, opts.End, time.Now().UTC())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	provider := providers.NewNCEIProvider(httpClient, cfg.BaseURL, logger, opts.Debug)
	service := rainfall.NewService(provider)

	logger.Info("fetching rainfall data",
		"station", cfg.StationID,
		"start", rng.Start.Format(rainfall.DateFormat),
		"end", rng.End.Format(rainfall.DateFormat),
	)

	summary, observations, err := service.SeasonSummary(ctx, cfg.StationID, rng)
	if err != nil {
		return err
	}

	switch {
	case opts.JSON:
		out, err := report.JSON(summary, observations)
		if err != nil {
			return err
		}
		fmt.Print(out)
	case opts.CSV:
		out, err := report.CSV(summary, observations)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		fmt.Print(report.Text(summary, observations, cfg.StationName, time.Now()))
	}

	if opts.Email != "" {
		// The report is already on stdout; a send failure must not lose it.
		body := report.Text(summary, observations, cfg.StationName, time.Now())
		smtp, err := creds.Resolve(creds.NewKeyringStore(), creds.EnvStore{})
		if err != nil {
			return err
		}
		subject := fmt.Sprintf("Rainfall Update — %s", time.Now().Format("Jan 02, 2006"))
		if err := mail.Send(smtp, opts.Email, subject, body); err != nil {
			return err
		}
		logger.Info("report emailed", "to", opts.Email)
	}

	return nil
}

// printError writes a message per error class, with guidance where the
// user can fix it themselves.
func printError(err error) {
	switch {
	case errors.Is(err, rainfall.ErrInvalidRange):
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Dates must be YYYY-MM-DD with start on or before end.")
	case errors.Is(err, providers.ErrNetwork):
		fmt.Fprintln(os.Stderr, "Error: could not reach the NOAA API:", err)
	case errors.Is(err, providers.ErrParse):
		fmt.Fprintln(os.Stderr, "Error: unexpected response from the NOAA API (data-source issue):", err)
	case errors.Is(err, creds.ErrNoCredentials):
		fmt.Fprintln(os.Stderr, "Error: no email credentials found.")
		fmt.Fprintln(os.Stderr, "  Run:  rainseason --setup-email")
		fmt.Fprintln(os.Stderr, "  Or set SMTP_USER and SMTP_PASS environment variables.")
	case errors.Is(err, mail.ErrSendFailed):
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "The report was printed above; only delivery failed.")
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}
