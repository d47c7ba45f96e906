package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes application metrics to CloudWatch. A nil client turns
// every method into a no-op, which is what tests and local runs use.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// RecordGeneration records the outcome of one card-generation request:
// how many cards were produced, for which persona, and how long it took.
func (m *Metrics) RecordGeneration(ctx context.Context, persona string, cardCount int, duration time.Duration, err error) {
	if m.client == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	dims := []types.Dimension{
		{Name: aws.String("Persona"), Value: aws.String(persona)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("CardsGenerated"),
			Dimensions: dims,
			Value:      aws.Float64(float64(cardCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
		{
			MetricName: aws.String("GenerationLatency"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	// Metrics are best effort, a publish failure never fails the request.
	m.client.PutMetricData(ctx, input)
}

// RecordLatency records latency for any operation
func (m *Metrics) RecordLatency(ctx context.Context, operation string, latency time.Duration) {
	if m.client == nil {
		return
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(operation)},
			},
			Value:     aws.Float64(float64(latency.Milliseconds())),
			Unit:      types.StandardUnitMilliseconds,
			Timestamp: aws.Time(time.Now()),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	m.client.PutMetricData(ctx, input)
}

// RecordError records error occurrences by type
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	if m.client == nil {
		return
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("Errors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("ErrorType"), Value: aws.String(errorType)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	m.client.PutMetricData(ctx, input)
}
