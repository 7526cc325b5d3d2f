package commands

import (
	"strings"
	"testing"

	"awsctl/pkg/amazon/amazontest"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancesSortedAndAligned(t *testing.T) {
	fakes := amazontest.New()
	fakes.EC2.Pages = []*ec2.DescribeInstancesOutput{
		amazontest.Reservations(
			amazontest.Instance("i-0123456789abcdef0", "web", "running"),
			amazontest.Instance("i-0aaaaaaaaaaaaaaa1", "db", "terminated"),
		),
		amazontest.Reservations(amazontest.Instance("i-short", "", "stopped")),
	}

	r := run(t, fakes, "ec2", "instances")
	require.NoError(t, r.err)

	assert.Equal(t, ""+
		"i-short"+strings.Repeat(" ", 13)+"stopped"+strings.Repeat(" ", 4)+"<no-name>\n"+
		"i-0aaaaaaaaaaaaaaa1 terminated db\n"+
		"i-0123456789abcdef0 running    web\n",
		r.stdout)
	assert.Equal(t, []string{"DescribeInstances"}, fakes.Calls())
}

func TestInstancesEmpty(t *testing.T) {
	r := run(t, amazontest.New(), "ec2", "instances")

	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
}

func TestAddr(t *testing.T) {
	fakes := amazontest.New()
	inst := amazontest.Instance("i-1", "web", "running")
	inst.PrivateIpAddress = aws.String("10.0.0.4")
	fakes.EC2.Pages = []*ec2.DescribeInstancesOutput{amazontest.Reservations(inst)}

	r := run(t, fakes, "ec2", "addr", "i-1")

	require.NoError(t, r.err)
	assert.Equal(t, "private IP: 10.0.0.4\npublic IP: \n", r.stdout)
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.DescribeInput.InstanceIds))
}

func TestLifecycle(t *testing.T) {
	for _, tt := range []struct {
		verb   string
		call   string
		action string
	}{
		{"start", "StartInstances", "Starting"},
		{"stop", "StopInstances", "Stopping"},
		{"terminate", "TerminateInstances", "Terminating"},
	} {
		t.Run(tt.verb, func(t *testing.T) {
			fakes := amazontest.New()
			fakes.EC2.Changes = []*ec2.InstanceStateChange{amazontest.StateChange("i-1", "stopped", "pending")}

			r := run(t, fakes, "ec2", tt.verb, "i-1")

			require.NoError(t, r.err)
			assert.Equal(t, tt.action+" instance i-1\n  i-1 stopped -> pending\n  OK\n", r.stdout)
			assert.Equal(t, []string{tt.call}, fakes.Calls())
		})
	}
}

func TestLifecycleMissingInstanceID(t *testing.T) {
	fakes := amazontest.New()
	fakes.EC2.Changes = []*ec2.InstanceStateChange{{
		CurrentState: &ec2.InstanceState{Name: aws.String("pending")},
	}}

	r := run(t, fakes, "ec2", "start", "i-1")

	require.NoError(t, r.err)
	assert.Equal(t, "Starting instance i-1\n  i-????????????????? unknown -> pending\n  OK\n", r.stdout)
}

func TestReboot(t *testing.T) {
	fakes := amazontest.New()

	r := run(t, fakes, "ec2", "reboot", "i-1")

	require.NoError(t, r.err)
	assert.Equal(t, "Rebooting instance i-1\n  OK\n", r.stdout)
	assert.Equal(t, []string{"i-1"}, aws.StringValueSlice(fakes.EC2.RebootInput.InstanceIds))
}

func TestLifecycleError(t *testing.T) {
	fakes := amazontest.New()
	fakes.EC2.Err = assert.AnError

	r := run(t, fakes, "ec2", "stop", "i-404")

	require.Error(t, r.err)
	assert.Equal(t, "Stopping instance i-404\n", r.stdout)
	assert.Contains(t, r.stderr, "failed to stop instance")
}
