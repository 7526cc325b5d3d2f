package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *cli) buckets(cmd *cobra.Command, _ []string) error {
	client, err := c.aws()
	if err != nil {
		return err
	}
	list, err := client.S3Buckets(cmd.Context())
	if err != nil {
		return err
	}
	tab := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 0, 2, ' ', 0)
	for _, b := range list {
		created := "-"
		if !b.CreationDate.IsZero() {
			created = b.CreationDate.UTC().Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(tab, "%s\t%s\n", b.Name, created)
	}
	return tab.Flush()
}

func (c *cli) s3Cmd() *cobra.Command {
	s3Cmd := group("s3", "List S3 buckets")
	s3Cmd.AddCommand(&cobra.Command{
		Use:   "buckets",
		Short: "List buckets with their creation date",
		Args:  cobra.NoArgs,
		RunE:  c.buckets,
	})
	return s3Cmd
}
