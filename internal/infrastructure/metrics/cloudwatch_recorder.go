package metrics

import (
	"context"
	"fmt"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const DefaultNamespace = "Bordados/Admin"

// CloudWatchAPI is the subset of *cloudwatch.Client used by the recorder.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchRecorder publishes business metrics:
//   - PaymentsRecorded (count) and PaymentAmount, by Method
//   - OrderTransitions (count), by From and To
type CloudWatchRecorder struct {
	cw        CloudWatchAPI
	namespace string
	now       func() time.Time
}

var _ interfaces.IMetricsRecorder = (*CloudWatchRecorder)(nil)

func NewCloudWatchRecorder(cw CloudWatchAPI, namespace string) *CloudWatchRecorder {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CloudWatchRecorder{cw: cw, namespace: namespace, now: time.Now}
}

func (r *CloudWatchRecorder) RecordPayment(ctx context.Context, method entities.PaymentMethod, amount int64) error {
	dims := []cwtypes.Dimension{{Name: aws.String("Method"), Value: aws.String(string(method))}}
	ts := aws.Time(r.now().UTC())
	return r.put(ctx, []cwtypes.MetricDatum{
		{MetricName: aws.String("PaymentsRecorded"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(1), Dimensions: dims, Timestamp: ts},
		{MetricName: aws.String("PaymentAmount"), Unit: cwtypes.StandardUnitNone, Value: aws.Float64(float64(amount)), Dimensions: dims, Timestamp: ts},
	})
}

func (r *CloudWatchRecorder) RecordTransition(ctx context.Context, from, to entities.OrderState) error {
	return r.put(ctx, []cwtypes.MetricDatum{{
		MetricName: aws.String("OrderTransitions"),
		Unit:       cwtypes.StandardUnitCount,
		Value:      aws.Float64(1),
		Dimensions: []cwtypes.Dimension{
			{Name: aws.String("From"), Value: aws.String(string(from))},
			{Name: aws.String("To"), Value: aws.String(string(to))},
		},
		Timestamp: aws.Time(r.now().UTC()),
	}})
}

func (r *CloudWatchRecorder) put(ctx context.Context, data []cwtypes.MetricDatum) error {
	_, err := r.cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(r.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
