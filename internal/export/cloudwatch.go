package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// DefaultRegion and DefaultNamespace mirror the CLI defaults.
const (
	DefaultRegion    = "us-east-1"
	DefaultNamespace = "SystemMonitor"
)

// CloudWatchSink publishes points with PutMetricData under a fixed
// namespace.
type CloudWatchSink struct {
	client    *cloudwatch.Client
	namespace string
}

// NewCloudWatchSink builds a sink for the given region and namespace. The
// default credential chain is resolved eagerly so a host without
// credentials degrades at startup instead of failing on the first flush.
func NewCloudWatchSink(ctx context.Context, region, namespace string) (*CloudWatchSink, error) {
	if region == "" {
		region = DefaultRegion
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("resolving AWS credentials: %w", err)
	}

	return &CloudWatchSink{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}, nil
}

// Namespace returns the metric namespace this sink publishes under.
func (s *CloudWatchSink) Namespace() string {
	return s.namespace
}

// Put sends one batch of points. Callers keep batches within
// MaxPointsPerCall; the CloudWatch API rejects larger requests.
func (s *CloudWatchSink) Put(ctx context.Context, points []Point) error {
	data := make([]cwtypes.MetricDatum, 0, len(points))
	for _, p := range points {
		datum := cwtypes.MetricDatum{
			MetricName: aws.String(p.Name),
			Value:      aws.Float64(p.Value),
			Unit:       cwtypes.StandardUnit(p.Unit),
		}
		if !p.Time.IsZero() {
			datum.Timestamp = aws.Time(p.Time)
		}
		if len(p.Dimensions) > 0 {
			names := make([]string, 0, len(p.Dimensions))
			for name := range p.Dimensions {
				names = append(names, name)
			}
			sort.Strings(names)
			dims := make([]cwtypes.Dimension, 0, len(names))
			for _, name := range names {
				dims = append(dims, cwtypes.Dimension{
					Name:  aws.String(name),
					Value: aws.String(p.Dimensions[name]),
				})
			}
			datum.Dimensions = dims
		}
		data = append(data, datum)
	}

	_, err := s.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(s.namespace),
		MetricData: data,
	})
	return err
}
