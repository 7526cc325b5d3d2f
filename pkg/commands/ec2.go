package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"awsctl/pkg/amazon"
	"awsctl/pkg/util"

	"github.com/spf13/cobra"
)

const instanceIDWidth = 19

func (c *cli) instances(cmd *cobra.Command, _ []string) error {
	client, err := c.aws()
	if err != nil {
		return err
	}
	list, err := client.EC2Instances(cmd.Context())
	if err != nil {
		return err
	}
	printInstances(cmd.OutOrStdout(), list)
	return nil
}

func printInstances(w io.Writer, list []amazon.Instance) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})

	stateWidth := 0
	for _, i := range list {
		if len(i.State) > stateWidth {
			stateWidth = len(i.State)
		}
	}
	for _, i := range list {
		_, _ = fmt.Fprintf(w, "%-*s %-*s %s\n", instanceIDWidth, i.ID, stateWidth, i.State, i.Name)
	}
}

func (c *cli) addr(cmd *cobra.Command, args []string) error {
	client, err := c.aws()
	if err != nil {
		return err
	}
	list, err := client.EC2Instance(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, i := range list {
		_, _ = fmt.Fprintf(w, "private IP: %s\n", i.PrivateIP)
		_, _ = fmt.Fprintf(w, "public IP: %s\n", i.PublicIP)
	}
	return nil
}

type stateChangeFunc func(*amazon.Client, context.Context, string) ([]amazon.StateChange, error)

// changeState runs one of the start, stop or terminate calls and prints
// the transitions it reports.
func (c *cli) changeState(action string, call stateChangeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := c.aws()
		if err != nil {
			return err
		}
		id := args[0]
		w := cmd.OutOrStdout()
		return util.Action(w, fmt.Sprintf("%s instance %s", action, id), func() error {
			changes, err := call(client, cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, sc := range changes {
				_, _ = fmt.Fprintf(w, "  %s %s -> %s\n", sc.ID, sc.Previous, sc.Current)
			}
			return nil
		})
	}
}

func (c *cli) reboot(cmd *cobra.Command, args []string) error {
	client, err := c.aws()
	if err != nil {
		return err
	}
	id := args[0]
	return util.Action(cmd.OutOrStdout(), fmt.Sprintf("Rebooting instance %s", id), func() error {
		return client.EC2Reboot(cmd.Context(), id)
	})
}

func (c *cli) ec2Cmd() *cobra.Command {
	ec2Cmd := group("ec2", "List and control EC2 instances")

	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "instances",
		Short: "List instances sorted by name",
		Args:  cobra.NoArgs,
		RunE:  c.instances,
	})
	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "addr <instance-id>",
		Short: "Show the IP addresses of an instance",
		Args:  requireArg("instance-id"),
		RunE:  c.addr,
	})
	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "start <instance-id>",
		Short: "Start an instance",
		Args:  requireArg("instance-id"),
		RunE:  c.changeState("Starting", (*amazon.Client).EC2Start),
	})
	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "stop <instance-id>",
		Short: "Stop an instance",
		Args:  requireArg("instance-id"),
		RunE:  c.changeState("Stopping", (*amazon.Client).EC2Stop),
	})
	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "terminate <instance-id>",
		Short: "Terminate an instance",
		Args:  requireArg("instance-id"),
		RunE:  c.changeState("Terminating", (*amazon.Client).EC2Terminate),
	})
	ec2Cmd.AddCommand(&cobra.Command{
		Use:   "reboot <instance-id>",
		Short: "Reboot an instance",
		Args:  requireArg("instance-id"),
		RunE:  c.reboot,
	})

	return ec2Cmd
}
