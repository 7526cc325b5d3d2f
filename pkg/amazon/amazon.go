package amazon

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SessionOptions selects the credentials profile and region of a session.
// Empty values leave resolution to the SDK default chain.
type SessionOptions struct {
	Region  string
	Profile string
	Log     *logrus.Logger
}

// NewSession builds a session from the shared config files and environment.
// A profile missing from the shared files is not an error here; the SDK
// falls back to its credential chain and fails on the first request.
func NewSession(opts SessionOptions) (*session.Session, error) {
	cfg := aws.Config{}
	if opts.Region != "" {
		cfg.Region = aws.String(opts.Region)
	}
	if opts.Log != nil && opts.Log.IsLevelEnabled(logrus.DebugLevel) {
		log := opts.Log.WithField("source", "aws-sdk")
		cfg.LogLevel = aws.LogLevel(aws.LogDebug)
		cfg.Logger = aws.LoggerFunc(func(args ...interface{}) {
			log.Debug(args...)
		})
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            cfg,
		Profile:           opts.Profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aws session")
	}
	return sess, nil
}

// Client groups the service clients used by the commands.
type Client struct {
	EC2  ec2iface.EC2API
	S3   s3iface.S3API
	Logs cloudwatchlogsiface.CloudWatchLogsAPI

	Log logrus.FieldLogger
}

func New(sess *session.Session, log logrus.FieldLogger) *Client {
	return &Client{
		EC2:  ec2.New(sess),
		S3:   s3.New(sess),
		Logs: cloudwatchlogs.New(sess),
		Log:  log,
	}
}

func (c *Client) log() logrus.FieldLogger {
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Log = l
	}
	return c.Log
}
