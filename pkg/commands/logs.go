package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"awsctl/pkg/amazon"
	"awsctl/pkg/config"
	"awsctl/pkg/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func checkLimit(limit int64) error {
	if limit < 1 || limit > amazon.MaxStreamsLimit {
		return errors.Errorf("--limit must be between 1 and %d, got %d", amazon.MaxStreamsLimit, limit)
	}
	return nil
}

func (c *cli) groups(cmd *cobra.Command, args []string) error {
	var prefix string
	if len(args) == 1 {
		prefix = args[0]
	}
	client, err := c.aws()
	if err != nil {
		return err
	}
	list, err := client.LogGroups(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	tab := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 0, 2, ' ', 0)
	for _, g := range list {
		retention := "never"
		if g.RetentionDays > 0 {
			retention = fmt.Sprintf("%dd", g.RetentionDays)
		}
		_, _ = fmt.Fprintf(tab, "%s\t%s\t%s\n", g.Name, util.HumanByteSize(g.StoredBytes), retention)
	}
	return tab.Flush()
}

func (c *cli) recentStreams(limit *int64) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("limit") {
			*limit = c.cfg.RecentStreamsLimit
			if err := checkLimit(*limit); err != nil {
				return errors.Wrap(err, "invalid recent_streams_limit in config")
			}
		}
		client, err := c.aws()
		if err != nil {
			return err
		}
		list, err := client.RecentLogStreams(cmd.Context(), args[0], *limit)
		if err != nil {
			return err
		}

		tab := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 0, 2, ' ', 0)
		for _, s := range list {
			last := "-"
			if !s.LastEvent.IsZero() {
				last = s.LastEvent.Format(time.RFC3339)
			}
			_, _ = fmt.Fprintf(tab, "%s\t%s\n", last, s.Name)
		}
		return tab.Flush()
	}
}

func (c *cli) logsCmd() *cobra.Command {
	logsCmd := group("logs", "Browse CloudWatch Logs")

	logsCmd.AddCommand(&cobra.Command{
		Use:   "groups [<prefix>]",
		Short: "List log groups, optionally only those starting with prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.groups,
	})

	var limit int64
	recent := &cobra.Command{
		Use:   "recent-streams [--limit <n>] <log-group-name>",
		Short: "List the most recently written streams of a log group",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := requireArg("log-group-name")(cmd, args); err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				return checkLimit(limit)
			}
			return nil
		},
		RunE: c.recentStreams(&limit),
	}
	recent.Flags().Int64VarP(&limit, "limit", "n", config.DefaultRecentStreamsLimit, fmt.Sprintf("number of streams to show, at most %d", amazon.MaxStreamsLimit))
	logsCmd.AddCommand(recent)

	return logsCmd
}
