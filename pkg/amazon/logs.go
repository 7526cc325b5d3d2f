package amazon

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MaxStreamsLimit is the largest page DescribeLogStreams accepts.
const MaxStreamsLimit = 50

type LogGroup struct {
	Name          string
	StoredBytes   int64
	RetentionDays int64
}

type LogStream struct {
	Name string
	// LastEvent is zero when the stream holds no events.
	LastEvent time.Time
}

// LogGroups lists log groups, restricted to names starting with prefix
// when prefix is not empty.
func (c *Client) LogGroups(ctx context.Context, prefix string) ([]LogGroup, error) {
	input := &cloudwatchlogs.DescribeLogGroupsInput{}
	if prefix != "" {
		input.LogGroupNamePrefix = aws.String(prefix)
	}
	c.log().WithField("prefix", prefix).Debug("logs DescribeLogGroups")

	var list []LogGroup
	err := c.Logs.DescribeLogGroupsPagesWithContext(ctx, input, func(page *cloudwatchlogs.DescribeLogGroupsOutput, _ bool) bool {
		for _, g := range page.LogGroups {
			list = append(list, LogGroup{
				Name:          aws.StringValue(g.LogGroupName),
				StoredBytes:   aws.Int64Value(g.StoredBytes),
				RetentionDays: aws.Int64Value(g.RetentionInDays),
			})
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list log groups")
	}
	return list, nil
}

// RecentLogStreams returns at most limit streams of group, most recently
// written first.
func (c *Client) RecentLogStreams(ctx context.Context, group string, limit int64) ([]LogStream, error) {
	if limit < 1 || limit > MaxStreamsLimit {
		return nil, errors.Errorf("limit must be between 1 and %d, got %d", MaxStreamsLimit, limit)
	}
	c.log().WithFields(logrus.Fields{
		"group": group,
		"limit": limit,
	}).Debug("logs DescribeLogStreams")

	output, err := c.Logs.DescribeLogStreamsWithContext(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(group),
		OrderBy:      aws.String(cloudwatchlogs.OrderByLastEventTime),
		Descending:   aws.Bool(true),
		Limit:        aws.Int64(limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list log streams")
	}

	var list []LogStream
	for _, s := range output.LogStreams {
		stream := LogStream{Name: aws.StringValue(s.LogStreamName)}
		if s.LastEventTimestamp != nil {
			stream.LastEvent = aws.MillisecondsTimeValue(s.LastEventTimestamp).UTC()
		}
		list = append(list, stream)
	}
	return list, nil
}
