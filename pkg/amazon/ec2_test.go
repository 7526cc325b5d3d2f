package amazon_test

import (
	"context"
	"testing"

	"awsctl/pkg/amazon"
	"awsctl/pkg/amazon/amazontest"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEC2InstancesAcrossPages(t *testing.T) {
	fakes := amazontest.New()
	fakes.EC2.Pages = []*ec2.DescribeInstancesOutput{
		amazontest.Reservations(
			amazontest.Instance("i-0aaa", "web", "running"),
			amazontest.Instance("i-0bbb", "", "stopped"),
		),
		amazontest.Reservations(&ec2.Instance{}),
	}

	list, err := fakes.Client().EC2Instances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []amazon.Instance{
		{ID: "i-0aaa", Name: "web", State: "running"},
		{ID: "i-0bbb", Name: "<no-name>", State: "stopped"},
		{ID: "i-?????????????????", Name: "<no-name>", State: "unknown"},
	}, list)
	assert.Empty(t, fakes.EC2.DescribeInput.InstanceIds)
	assert.Equal(t, []string{"DescribeInstances"}, fakes.Calls())
}

func TestEC2InstanceByID(t *testing.T) {
	fakes := amazontest.New()
	inst := amazontest.Instance("i-0aaa", "web", "running")
	inst.PrivateIpAddress = aws.String("10.0.0.4")
	inst.PublicIpAddress = aws.String("52.1.2.3")
	fakes.EC2.Pages = []*ec2.DescribeInstancesOutput{amazontest.Reservations(inst)}

	list, err := fakes.Client().EC2Instance(context.Background(), "i-0aaa")
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Equal(t, "10.0.0.4", list[0].PrivateIP)
	assert.Equal(t, "52.1.2.3", list[0].PublicIP)
	assert.Equal(t, []string{"i-0aaa"}, aws.StringValueSlice(fakes.EC2.DescribeInput.InstanceIds))
}

func TestEC2StateChanges(t *testing.T) {
	fakes := amazontest.New()
	client := fakes.Client()
	ctx := context.Background()

	fakes.EC2.Changes = []*ec2.InstanceStateChange{amazontest.StateChange("i-1", "stopped", "pending")}
	changes, err := client.EC2Start(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, []amazon.StateChange{{ID: "i-1", Previous: "stopped", Current: "pending"}}, changes)
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.StartInput.InstanceIds))

	fakes.EC2.Changes = []*ec2.InstanceStateChange{amazontest.StateChange("i-1", "running", "stopping")}
	changes, err = client.EC2Stop(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, "stopping", changes[0].Current)
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.StopInput.InstanceIds))

	fakes.EC2.Changes = []*ec2.InstanceStateChange{
		{InstanceId: aws.String("i-1")},
		{CurrentState: &ec2.InstanceState{Name: aws.String("shutting-down")}},
	}
	changes, err = client.EC2Terminate(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, []amazon.StateChange{
		{ID: "i-1", Previous: "unknown", Current: "unknown"},
		{ID: "i-?????????????????", Previous: "unknown", Current: "shutting-down"},
	}, changes)
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.TerminateInput.InstanceIds))

	require.NoError(t, client.EC2Reboot(ctx, "i-1"))
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.RebootInput.InstanceIds))

	assert.Equal(t, []string{"StartInstances", "StopInstances", "TerminateInstances", "RebootInstances"}, fakes.Calls())
}

func TestEC2ErrorsKeepCause(t *testing.T) {
	fakes := amazontest.New()
	cause := awserr.New("UnauthorizedOperation", "You are not authorized to perform this operation.", nil)
	fakes.EC2.Err = cause
	client := fakes.Client()
	ctx := context.Background()

	_, err := client.EC2Instances(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list instances")
	assert.Contains(t, err.Error(), "UnauthorizedOperation")
	assert.Equal(t, cause, errors.Cause(err))

	_, err = client.EC2Instance(ctx, "i-1")
	assert.Contains(t, err.Error(), "failed to get instance details")

	_, err = client.EC2Start(ctx, "i-1")
	assert.Contains(t, err.Error(), "failed to start instance")

	_, err = client.EC2Stop(ctx, "i-1")
	assert.Contains(t, err.Error(), "failed to stop instance")

	_, err = client.EC2Terminate(ctx, "i-1")
	assert.Contains(t, err.Error(), "failed to terminate instance")

	err = client.EC2Reboot(ctx, "i-1")
	assert.Contains(t, err.Error(), "failed to reboot instance")
}
