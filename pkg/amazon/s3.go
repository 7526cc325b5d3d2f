package amazon

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

type Bucket struct {
	Name         string
	CreationDate time.Time
}

// S3Buckets lists the buckets owned by the caller.
func (c *Client) S3Buckets(ctx context.Context) ([]Bucket, error) {
	c.log().Debug("s3 ListBuckets")
	output, err := c.S3.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buckets")
	}

	var list []Bucket
	for _, b := range output.Buckets {
		if b.Name == nil {
			return nil, errors.New("missing bucket name")
		}
		list = append(list, Bucket{
			Name:         *b.Name,
			CreationDate: aws.TimeValue(b.CreationDate),
		})
	}
	return list, nil
}
