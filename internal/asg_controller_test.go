package internal_test

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/queuescalr/internal"
	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

var asgTarget = internal.Target{Cluster: "eu-west-1", Service: "workers"}

func setupASGController() (*internal.ASGController, *ifaces.MockAutoscaling) {
	mockAutoscaling := &ifaces.MockAutoscaling{}
	tracer, _ := testTracer()

	return &internal.ASGController{Autoscaling: mockAutoscaling, Tracer: tracer}, mockAutoscaling
}

func TestASGController_GetDesiredCount_OK(t *testing.T) {
	sut, mockAutoscaling := setupASGController()
	defer mockAutoscaling.AssertExpectations(t)

	mockAutoscaling.On(
		"DescribeAutoScalingGroups",
		mock.Anything,
		mock.MatchedBy(func(input *autoscaling.DescribeAutoScalingGroupsInput) bool {
			return len(input.AutoScalingGroupNames) == 1 && input.AutoScalingGroupNames[0] == "workers"
		}),
		mock.Anything,
	).Return(&autoscaling.DescribeAutoScalingGroupsOutput{
		AutoScalingGroups: []types.AutoScalingGroup{{DesiredCapacity: aws.Int32(4)}},
	}, nil)

	count, err := sut.GetDesiredCount(t.Context(), asgTarget)

	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestASGController_GetDesiredCount_Failures(t *testing.T) {
	for name, tc := range map[string]struct {
		output *autoscaling.DescribeAutoScalingGroupsOutput
		err    error
		msg    string
	}{
		"API error": {
			err: errors.New("bacon"),
			msg: "could not get autoscaling group details: bacon",
		},
		"no groups": {
			output: &autoscaling.DescribeAutoScalingGroupsOutput{},
			msg:    "could not find autoscaling group workers",
		},
		"many groups": {
			output: &autoscaling.DescribeAutoScalingGroupsOutput{
				AutoScalingGroups: []types.AutoScalingGroup{{}, {}},
			},
			msg: "found more than one autoscaling group with name workers",
		},
		"no desired capacity": {
			output: &autoscaling.DescribeAutoScalingGroupsOutput{
				AutoScalingGroups: []types.AutoScalingGroup{{}},
			},
			msg: "autoscaling group workers has no desired capacity",
		},
	} {
		t.Run(name, func(t *testing.T) {
			sut, mockAutoscaling := setupASGController()
			defer mockAutoscaling.AssertExpectations(t)

			mockAutoscaling.On("DescribeAutoScalingGroups", mock.Anything, mock.Anything, mock.Anything).
				Return(tc.output, tc.err)

			_, err := sut.GetDesiredCount(t.Context(), asgTarget)

			require.ErrorIs(t, err, internal.ErrFleetUnavailable)
			require.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestASGController_SetDesiredCount(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		sut, mockAutoscaling := setupASGController()
		defer mockAutoscaling.AssertExpectations(t)

		mockAutoscaling.On("SetDesiredCapacity", mock.Anything, mock.MatchedBy(func(input *autoscaling.SetDesiredCapacityInput) bool {
			return aws.ToString(input.AutoScalingGroupName) == "workers" && aws.ToInt32(input.DesiredCapacity) == 6
		}), mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)

		ack, err := sut.SetDesiredCount(t.Context(), asgTarget, 6)

		require.NoError(t, err)
		require.Equal(t, internal.Acknowledgement{DesiredCount: 6}, ack)
	})

	t.Run("rejected", func(t *testing.T) {
		sut, mockAutoscaling := setupASGController()
		defer mockAutoscaling.AssertExpectations(t)

		mockAutoscaling.On("SetDesiredCapacity", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "ValidationError", Message: "above max size"})

		_, err := sut.SetDesiredCount(t.Context(), asgTarget, 6)

		require.ErrorIs(t, err, internal.ErrActuationFailed)
	})
}
