package commands

import (
	"strings"

	"awsctl/pkg/amazon"
	"awsctl/pkg/config"
	"awsctl/pkg/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ClientFactory builds the AWS client. It is only called once the
// arguments of a command have been validated.
type ClientFactory func(opts amazon.SessionOptions) (*amazon.Client, error)

func DefaultClientFactory(opts amazon.SessionOptions) (*amazon.Client, error) {
	sess, err := amazon.NewSession(opts)
	if err != nil {
		return nil, err
	}
	return amazon.New(sess, opts.Log), nil
}

type cli struct {
	root      *cobra.Command
	newClient ClientFactory
	client    *amazon.Client

	cfg *config.Config
	log *logrus.Logger

	flRegion   string
	flProfile  string
	flLogLevel string
	flConfig   string
}

// Execute runs awsctl against the real AWS endpoints.
func Execute() error {
	return New(DefaultClientFactory).Execute()
}

// New returns the root awsctl command.
func New(newClient ClientFactory) *cobra.Command {
	c := &cli{newClient: newClient}

	c.root = group("awsctl", "A small command-line tool for everyday AWS chores")
	c.root.Long = `awsctl lists and controls EC2 instances, lists S3 buckets and
browses CloudWatch Logs. Credentials and region come from the usual AWS
environment variables and shared config files.`
	c.root.CompletionOptions.DisableDefaultCmd = true
	c.root.PersistentPreRunE = c.setup

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.flRegion, "region", "", "region to use, defaults to the AWS environment")
	flags.StringVar(&c.flProfile, "profile", "", "shared config profile to use")
	flags.StringVar(&c.flLogLevel, "log-level", "", "diagnostics level: debug, info, warn or error")
	flags.StringVar(&c.flConfig, "config", "", "path of the awsctl config file")

	c.root.AddCommand(c.ec2Cmd())
	c.root.AddCommand(c.logsCmd())
	c.root.AddCommand(c.s3Cmd())

	return c.root
}

// group builds a command that only holds subcommands. Invoking it bare or
// with an unknown subcommand is a usage error.
func group(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errors.Errorf("%s requires a subcommand", cmd.CommandPath())
		},
	}
}

// requireArg accepts exactly one non-empty positional argument.
func requireArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.Errorf("%s requires exactly one <%s> argument, received %d", cmd.CommandPath(), name, len(args))
		}
		if strings.TrimSpace(args[0]) == "" {
			return errors.Errorf("%s: <%s> must not be empty", cmd.CommandPath(), name)
		}
		return nil
	}
}

// setup runs after argument validation, so anything failing from here on
// is not a usage problem.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	// Groups and cobra's help command never reach AWS.
	if cmd.HasSubCommands() || cmd.RunE == nil {
		return nil
	}
	cmd.SilenceUsage = true

	path, explicit := config.Resolve(c.flConfig)
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("region") {
		cfg.Region = c.flRegion
	}
	if flags.Changed("profile") {
		cfg.Profile = c.flProfile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flLogLevel
	}
	c.cfg = cfg
	c.log = logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	c.log.WithFields(logrus.Fields{
		"config":  path,
		"region":  cfg.Region,
		"profile": cfg.Profile,
	}).Debug("configuration loaded")
	return nil
}

func (c *cli) aws() (*amazon.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	client, err := c.newClient(amazon.SessionOptions{
		Region:  c.cfg.Region,
		Profile: c.cfg.Profile,
		Log:     c.log,
	})
	if err != nil {
		return nil, err
	}
	if client.Log == nil {
		client.Log = c.log
	}
	c.client = client
	return client, nil
}
