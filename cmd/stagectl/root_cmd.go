package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stagecraft/stagectl/pkg/api"
	"github.com/stagecraft/stagectl/pkg/http/client"
	"github.com/stagecraft/stagectl/pkg/http/middleware"
	"github.com/stagecraft/stagectl/pkg/remote"
	"github.com/stagecraft/stagectl/pkg/retry"

	transport "github.com/stagecraft/stagectl/pkg/http"
)

const (
	EnvVariableURL      = "STAGECTL_URL"
	EnvVariableUsername = "STAGECTL_USERNAME"
	EnvVariablePassword = "STAGECTL_PASSWORD"
	EnvVariableProfile  = "STAGECTL_PROFILE"
)

const (
	defaultURL       = "http://localhost:8081/nexus"
	defaultAttempts  = 10
	defaultPollDelay = 5 * time.Second
	defaultTimeout   = 60 * time.Second
	defaultRPS       = 200
	defaultBurst     = 125
)

type rootOpts struct {
	URL        string
	Username   string
	Password   string
	Profile    string
	Timeout    time.Duration
	Attempts   int
	PollDelay  time.Duration
	RPS        float64
	Verbose    bool
	ConfigFile string

	API    api.Service
	Policy retry.Policy
	Logger log.Logger
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
stagectl drives artifacts through the staging workflow of a repository manager.

Workflow:
  stagectl repos                      # What has been staged?
  stagectl close                      # Close the open repository, running the server's rules.
  stagectl promote                    # Release the closed repository to its target.
  stagectl release                    # Or do both in one go.
  stagectl drop -r comexample-1001    # Discard a repository you don't want.
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "stagectl",
		Long:              rootLongHelp,
		SilenceUsage:      true,
		PersistentPreRunE: opts.PersistentPreRunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.URL, "url", "u", defaultURL,
		fmt.Sprintf("base URL of the repository manager; you can also set the environment variable %s", EnvVariableURL))
	cmd.PersistentFlags().StringVarP(&opts.Profile, "profile", "p", "",
		fmt.Sprintf("staging profile to work in; you can also set the environment variable %s", EnvVariableProfile))
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"log remote call failures to stderr")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "",
		"YAML config file to read defaults from (default ~/.stagectl.yaml)")
	addAuthFlags(cmd.PersistentFlags(), opts)
	addWaitFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newClose(opts).Command(),
		newPromote(opts).Command(),
		newDrop(opts).Command(),
		newRelease(opts).Command(),
		newRepos(opts).Command(),
		newProfiles(opts).Command(),
		newStatus(opts).Command(),
		newActivity(opts).Command(),
		newCheck(opts).Command(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}

// addAuthFlags registers the credential flags. They are persistent, so
// every subcommand can authenticate.
func addAuthFlags(fs *pflag.FlagSet, opts *rootOpts) {
	fs.StringVar(&opts.Username, "username", "",
		fmt.Sprintf("username for HTTP basic auth; you can also set the environment variable %s", EnvVariableUsername))
	fs.StringVar(&opts.Password, "password", "",
		fmt.Sprintf("password for HTTP basic auth; you can also set the environment variable %s", EnvVariablePassword))
}

// addWaitFlags registers the flags governing how long stagectl waits
// for the server to confirm a transition.
func addWaitFlags(fs *pflag.FlagSet, opts *rootOpts) {
	fs.IntVar(&opts.Attempts, "attempts", defaultAttempts,
		"how many times to poll for a transition before giving up")
	fs.DurationVar(&opts.PollDelay, "poll-delay", defaultPollDelay,
		"how long to wait between polls")
	fs.DurationVar(&opts.Timeout, "timeout", defaultTimeout,
		"timeout for each HTTP request")
	fs.Float64Var(&opts.RPS, "rps", defaultRPS,
		"maximum requests per second to the server")
}

// PersistentPreRunE resolves the configuration exactly once, in the
// order flag > environment > config file > built-in default, and
// builds the API client every command talks through. Commands see only
// the resolved values.
func (opts *rootOpts) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cfg, path, err := loadConfigFile(opts.ConfigFile)
	if err != nil {
		return err
	}

	opts.URL = resolve(flags.Changed("url"), opts.URL, os.Getenv(EnvVariableURL), cfg.URL, defaultURL)
	opts.Username = resolve(flags.Changed("username"), opts.Username, os.Getenv(EnvVariableUsername), cfg.Username, "")
	opts.Password = resolve(flags.Changed("password"), opts.Password, os.Getenv(EnvVariablePassword), cfg.Password, "")
	opts.Profile = resolve(flags.Changed("profile"), opts.Profile, os.Getenv(EnvVariableProfile), cfg.Profile, "")

	if !flags.Changed("attempts") && cfg.Attempts > 0 {
		opts.Attempts = cfg.Attempts
	}
	if !flags.Changed("poll-delay") && cfg.PollDelay != "" {
		d, err := time.ParseDuration(cfg.PollDelay)
		if err != nil {
			return errors.Wrapf(err, "parsing poll-delay in %s", path)
		}
		opts.PollDelay = d
	}
	if !flags.Changed("timeout") && cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return errors.Wrapf(err, "parsing timeout in %s", path)
		}
		opts.Timeout = d
	}
	if !flags.Changed("rps") && cfg.RPS > 0 {
		opts.RPS = cfg.RPS
	}

	if opts.Attempts < 1 {
		return newUsageError("--attempts must be at least 1")
	}
	if opts.PollDelay < 0 {
		return newUsageError("--poll-delay must not be negative")
	}
	if opts.RPS <= 0 {
		return newUsageError("--rps must be positive")
	}
	opts.Policy = retry.Policy{MaxAttempts: opts.Attempts, Delay: opts.PollDelay}

	logger := log.NewLogfmtLogger(os.Stderr)
	opts.Logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	base, err := url.Parse(opts.URL)
	if err != nil {
		return errors.Wrapf(err, "parsing URL %q", opts.URL)
	}

	limiters := &middleware.RateLimiters{
		RPS:    opts.RPS,
		Burst:  defaultBurst,
		Logger: log.With(opts.Logger, "component", "ratelimiter"),
	}
	httpClient := &http.Client{
		Transport: limiters.RoundTripper(http.DefaultTransport, base.Host),
		Timeout:   opts.Timeout,
	}

	var service api.Service
	service = client.New(httpClient, transport.NewAPIRouter(), opts.URL, client.Credentials{
		Username: opts.Username,
		Password: opts.Password,
	})
	service = remote.Instrument(service)
	if opts.Verbose {
		service = remote.NewErrorLoggingService(service, log.With(opts.Logger, "component", "remote"))
	}
	opts.API = service

	return nil
}
