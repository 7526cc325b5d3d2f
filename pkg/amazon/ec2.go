package amazon

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/pkg/errors"
)

const (
	unknownInstanceID = "i-?????????????????"
	unknownName       = "<no-name>"
	unknownState      = "unknown"
)

type Instance struct {
	ID        string
	Name      string
	State     string
	PrivateIP string
	PublicIP  string
}

// StateChange is one entry of a start, stop or terminate response.
type StateChange struct {
	ID       string
	Previous string
	Current  string
}

func newInstance(i *ec2.Instance) Instance {
	inst := Instance{
		ID:        aws.StringValue(i.InstanceId),
		Name:      unknownName,
		State:     unknownState,
		PrivateIP: aws.StringValue(i.PrivateIpAddress),
		PublicIP:  aws.StringValue(i.PublicIpAddress),
	}
	if inst.ID == "" {
		inst.ID = unknownInstanceID
	}
	for _, tag := range i.Tags {
		if aws.StringValue(tag.Key) == "Name" && tag.Value != nil {
			inst.Name = *tag.Value
			break
		}
	}
	if i.State != nil && i.State.Name != nil {
		inst.State = *i.State.Name
	}
	return inst
}

func (c *Client) describeInstances(ctx context.Context, input *ec2.DescribeInstancesInput) ([]Instance, error) {
	var list []Instance
	err := c.EC2.DescribeInstancesPagesWithContext(ctx, input, func(page *ec2.DescribeInstancesOutput, _ bool) bool {
		for _, r := range page.Reservations {
			for _, i := range r.Instances {
				list = append(list, newInstance(i))
			}
		}
		return true
	})
	return list, err
}

// EC2Instances lists every instance visible in the region.
func (c *Client) EC2Instances(ctx context.Context) ([]Instance, error) {
	c.log().Debug("ec2 DescribeInstances")
	list, err := c.describeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list instances")
	}
	return list, nil
}

// EC2Instance describes a single instance by id.
func (c *Client) EC2Instance(ctx context.Context, id string) ([]Instance, error) {
	c.log().WithField("instance", id).Debug("ec2 DescribeInstances")
	list, err := c.describeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: aws.StringSlice([]string{id}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get instance details")
	}
	return list, nil
}

func stateChanges(in []*ec2.InstanceStateChange) []StateChange {
	var list []StateChange
	for _, sc := range in {
		change := StateChange{
			ID:       aws.StringValue(sc.InstanceId),
			Previous: unknownState,
			Current:  unknownState,
		}
		if change.ID == "" {
			change.ID = unknownInstanceID
		}
		if sc.PreviousState != nil && sc.PreviousState.Name != nil {
			change.Previous = *sc.PreviousState.Name
		}
		if sc.CurrentState != nil && sc.CurrentState.Name != nil {
			change.Current = *sc.CurrentState.Name
		}
		list = append(list, change)
	}
	return list
}

func (c *Client) EC2Start(ctx context.Context, id string) ([]StateChange, error) {
	c.log().WithField("instance", id).Debug("ec2 StartInstances")
	output, err := c.EC2.StartInstancesWithContext(ctx, &ec2.StartInstancesInput{
		InstanceIds: aws.StringSlice([]string{id}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start instance")
	}
	return stateChanges(output.StartingInstances), nil
}

func (c *Client) EC2Stop(ctx context.Context, id string) ([]StateChange, error) {
	c.log().WithField("instance", id).Debug("ec2 StopInstances")
	output, err := c.EC2.StopInstancesWithContext(ctx, &ec2.StopInstancesInput{
		InstanceIds: aws.StringSlice([]string{id}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to stop instance")
	}
	return stateChanges(output.StoppingInstances), nil
}

func (c *Client) EC2Terminate(ctx context.Context, id string) ([]StateChange, error) {
	c.log().WithField("instance", id).Debug("ec2 TerminateInstances")
	output, err := c.EC2.TerminateInstancesWithContext(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: aws.StringSlice([]string{id}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to terminate instance")
	}
	return stateChanges(output.TerminatingInstances), nil
}

// EC2Reboot queues a reboot. The API reports no state for it.
func (c *Client) EC2Reboot(ctx context.Context, id string) error {
	c.log().WithField("instance", id).Debug("ec2 RebootInstances")
	_, err := c.EC2.RebootInstancesWithContext(ctx, &ec2.RebootInstancesInput{
		InstanceIds: aws.StringSlice([]string{id}),
	})
	return errors.Wrap(err, "failed to reboot instance")
}
