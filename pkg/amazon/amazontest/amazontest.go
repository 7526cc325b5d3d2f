// Package amazontest provides in-memory service clients for tests. Only the
// operations awsctl uses are implemented; anything else panics through the
// nil embedded interface.
package amazontest

import (
	"awsctl/pkg/amazon"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type EC2 struct {
	ec2iface.EC2API

	Pages   []*ec2.DescribeInstancesOutput
	Changes []*ec2.InstanceStateChange
	Err     error

	Calls          []string
	DescribeInput  *ec2.DescribeInstancesInput
	StartInput     *ec2.StartInstancesInput
	StopInput      *ec2.StopInstancesInput
	TerminateInput *ec2.TerminateInstancesInput
	RebootInput    *ec2.RebootInstancesInput
}

func (f *EC2) DescribeInstancesPagesWithContext(_ aws.Context, in *ec2.DescribeInstancesInput, fn func(*ec2.DescribeInstancesOutput, bool) bool, _ ...request.Option) error {
	f.Calls = append(f.Calls, "DescribeInstances")
	f.DescribeInput = in
	if f.Err != nil {
		return f.Err
	}
	for i, p := range f.Pages {
		if !fn(p, i == len(f.Pages)-1) {
			break
		}
	}
	return nil
}

func (f *EC2) StartInstancesWithContext(_ aws.Context, in *ec2.StartInstancesInput, _ ...request.Option) (*ec2.StartInstancesOutput, error) {
	f.Calls = append(f.Calls, "StartInstances")
	f.StartInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &ec2.StartInstancesOutput{StartingInstances: f.Changes}, nil
}

func (f *EC2) StopInstancesWithContext(_ aws.Context, in *ec2.StopInstancesInput, _ ...request.Option) (*ec2.StopInstancesOutput, error) {
	f.Calls = append(f.Calls, "StopInstances")
	f.StopInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &ec2.StopInstancesOutput{StoppingInstances: f.Changes}, nil
}

func (f *EC2) TerminateInstancesWithContext(_ aws.Context, in *ec2.TerminateInstancesInput, _ ...request.Option) (*ec2.TerminateInstancesOutput, error) {
	f.Calls = append(f.Calls, "TerminateInstances")
	f.TerminateInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &ec2.TerminateInstancesOutput{TerminatingInstances: f.Changes}, nil
}

func (f *EC2) RebootInstancesWithContext(_ aws.Context, in *ec2.RebootInstancesInput, _ ...request.Option) (*ec2.RebootInstancesOutput, error) {
	f.Calls = append(f.Calls, "RebootInstances")
	f.RebootInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &ec2.RebootInstancesOutput{}, nil
}

type S3 struct {
	s3iface.S3API

	Buckets []*s3.Bucket
	Err     error

	Calls []string
}

func (f *S3) ListBucketsWithContext(_ aws.Context, _ *s3.ListBucketsInput, _ ...request.Option) (*s3.ListBucketsOutput, error) {
	f.Calls = append(f.Calls, "ListBuckets")
	if f.Err != nil {
		return nil, f.Err
	}
	return &s3.ListBucketsOutput{Buckets: f.Buckets}, nil
}

type Logs struct {
	cloudwatchlogsiface.CloudWatchLogsAPI

	GroupPages []*cloudwatchlogs.DescribeLogGroupsOutput
	Streams    []*cloudwatchlogs.LogStream
	Err        error

	Calls        []string
	GroupsInput  *cloudwatchlogs.DescribeLogGroupsInput
	StreamsInput *cloudwatchlogs.DescribeLogStreamsInput
}

func (f *Logs) DescribeLogGroupsPagesWithContext(_ aws.Context, in *cloudwatchlogs.DescribeLogGroupsInput, fn func(*cloudwatchlogs.DescribeLogGroupsOutput, bool) bool, _ ...request.Option) error {
	f.Calls = append(f.Calls, "DescribeLogGroups")
	f.GroupsInput = in
	if f.Err != nil {
		return f.Err
	}
	for i, p := range f.GroupPages {
		if !fn(p, i == len(f.GroupPages)-1) {
			break
		}
	}
	return nil
}

// DescribeLogStreamsWithContext honours the request limit the way the
// service does.
func (f *Logs) DescribeLogStreamsWithContext(_ aws.Context, in *cloudwatchlogs.DescribeLogStreamsInput, _ ...request.Option) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	f.Calls = append(f.Calls, "DescribeLogStreams")
	f.StreamsInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	streams := f.Streams
	if n := int(aws.Int64Value(in.Limit)); n > 0 && len(streams) > n {
		streams = streams[:n]
	}
	return &cloudwatchlogs.DescribeLogStreamsOutput{LogStreams: streams}, nil
}

// Fakes bundles one fake per service.
type Fakes struct {
	EC2  *EC2
	S3   *S3
	Logs *Logs
}

func New() *Fakes {
	return &Fakes{EC2: &EC2{}, S3: &S3{}, Logs: &Logs{}}
}

func (f *Fakes) Client() *amazon.Client {
	return &amazon.Client{EC2: f.EC2, S3: f.S3, Logs: f.Logs}
}

// Calls returns every SDK operation issued, in order per service.
func (f *Fakes) Calls() []string {
	var calls []string
	calls = append(calls, f.EC2.Calls...)
	calls = append(calls, f.S3.Calls...)
	calls = append(calls, f.Logs.Calls...)
	return calls
}

func Instance(id, name, state string) *ec2.Instance {
	i := &ec2.Instance{InstanceId: aws.String(id)}
	if name != "" {
		i.Tags = []*ec2.Tag{
			{Key: aws.String("env"), Value: aws.String("test")},
			{Key: aws.String("Name"), Value: aws.String(name)},
		}
	}
	if state != "" {
		i.State = &ec2.InstanceState{Name: aws.String(state)}
	}
	return i
}

func Reservations(instances ...*ec2.Instance) *ec2.DescribeInstancesOutput {
	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{{Instances: instances}},
	}
}

func StateChange(id, previous, current string) *ec2.InstanceStateChange {
	return &ec2.InstanceStateChange{
		InstanceId:    aws.String(id),
		PreviousState: &ec2.InstanceState{Name: aws.String(previous)},
		CurrentState:  &ec2.InstanceState{Name: aws.String(current)},
	}
}
