package internal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// Attribute names of a delay timer item. The table's partition key is
// target_id (string); expires_at can be enabled as the table's TTL attribute.
const (
	dynamoAttrTargetID         = "target_id"
	dynamoAttrFirstSeenAt      = "first_seen_at"
	dynamoAttrCandidateWorkers = "candidate_workers"
	dynamoAttrExpiresAt        = "expires_at"
)

// DynamoDBDelayStore keeps one item per target in a DynamoDB table.
type DynamoDBDelayStore struct {
	// Clients.
	DynamoDB ifaces.DynamoDB

	// Configuration.
	TableName string
	TTL       time.Duration

	// Telemetry.
	Tracer trace.Tracer
}

// NewDynamoDBDelayStore creates a new DynamoDB-backed delay store.
func NewDynamoDBDelayStore(ctx context.Context, cfg *RuntimeConfig) (*DynamoDBDelayStore, error) {
	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &DynamoDBDelayStore{
		DynamoDB:  dynamodb.NewFromConfig(awsConfig),
		TableName: cfg.DynamoDBTableName,
		TTL:       cfg.DelayTimerTTL,
		Tracer:    otel.Tracer(tracerName),
	}, nil
}

func (s *DynamoDBDelayStore) Get(ctx context.Context, targetID string) (timer DelayTimer, found bool, err error) {
	ctx, span := s.Tracer.Start(ctx, "aws.dynamodb.getDelayTimer")
	defer span.End()

	span.SetAttributes(attribute.String("target_id", targetID))

	var output *dynamodb.GetItemOutput

	output, err = s.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.TableName),
		Key:            s.key(targetID),
		ConsistentRead: aws.Bool(true),
	})

	if err != nil {
		err = fmt.Errorf("%w: could not get delay timer item: %w", ErrStoreUnavailable, err)
		return timer, false, err
	}

	if len(output.Item) == 0 {
		return timer, false, nil
	}

	var expiresAt time.Time

	if timer, expiresAt, err = decodeDelayTimerItem(targetID, output.Item); err != nil {
		return timer, false, err
	}

	// DynamoDB removes expired items lazily, possibly days after expiry.
	if !expiresAt.IsZero() && !time.Now().Before(expiresAt) {
		span.SetAttributes(attribute.Bool("expired", true))
		return DelayTimer{}, false, nil
	}

	span.SetAttributes(attribute.Int("candidate_workers", timer.CandidateWorkers))

	return timer, true, nil
}

func (s *DynamoDBDelayStore) Set(ctx context.Context, targetID string, timer DelayTimer) (err error) {
	ctx, span := s.Tracer.Start(ctx, "aws.dynamodb.putDelayTimer")
	defer span.End()

	span.SetAttributes(
		attribute.String("target_id", targetID),
		attribute.Int("candidate_workers", timer.CandidateWorkers),
	)

	item := map[string]dynamodbtypes.AttributeValue{
		dynamoAttrTargetID:         &dynamodbtypes.AttributeValueMemberS{Value: targetID},
		dynamoAttrFirstSeenAt:      &dynamodbtypes.AttributeValueMemberS{Value: timer.FirstSeenAt.UTC().Format(time.RFC3339Nano)},
		dynamoAttrCandidateWorkers: &dynamodbtypes.AttributeValueMemberN{Value: strconv.Itoa(timer.CandidateWorkers)},
	}

	if s.TTL > 0 {
		expiresAt := timer.FirstSeenAt.Add(s.TTL).Unix()
		item[dynamoAttrExpiresAt] = &dynamodbtypes.AttributeValueMemberN{Value: strconv.FormatInt(expiresAt, 10)}
	}

	_, err = s.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      item,
	})

	if err != nil {
		err = fmt.Errorf("%w: could not put delay timer item: %w", ErrStoreUnavailable, err)
		return err
	}

	return nil
}

func (s *DynamoDBDelayStore) Delete(ctx context.Context, targetID string) (err error) {
	ctx, span := s.Tracer.Start(ctx, "aws.dynamodb.deleteDelayTimer")
	defer span.End()

	span.SetAttributes(attribute.String("target_id", targetID))

	_, err = s.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.TableName),
		Key:       s.key(targetID),
	})

	if err != nil {
		err = fmt.Errorf("%w: could not delete delay timer item: %w", ErrStoreUnavailable, err)
		return err
	}

	return nil
}

func (s *DynamoDBDelayStore) key(targetID string) map[string]dynamodbtypes.AttributeValue {
	return map[string]dynamodbtypes.AttributeValue{
		dynamoAttrTargetID: &dynamodbtypes.AttributeValueMemberS{Value: targetID},
	}
}

// decodeDelayTimerItem returns the timer and its expiry. The expiry is zero
// when the item carries no expires_at attribute.
func decodeDelayTimerItem(targetID string, item map[string]dynamodbtypes.AttributeValue) (timer DelayTimer, expiresAt time.Time, err error) {
	firstSeen, ok := item[dynamoAttrFirstSeenAt].(*dynamodbtypes.AttributeValueMemberS)
	if !ok {
		return timer, expiresAt, fmt.Errorf("%w: missing %s", ErrDelayTimerCorrupt, dynamoAttrFirstSeenAt)
	}

	candidate, ok := item[dynamoAttrCandidateWorkers].(*dynamodbtypes.AttributeValueMemberN)
	if !ok {
		return timer, expiresAt, fmt.Errorf("%w: missing %s", ErrDelayTimerCorrupt, dynamoAttrCandidateWorkers)
	}

	timer.TargetID = targetID

	if timer.FirstSeenAt, err = time.Parse(time.RFC3339Nano, firstSeen.Value); err != nil {
		return DelayTimer{}, expiresAt, fmt.Errorf("%w: invalid %s: %w", ErrDelayTimerCorrupt, dynamoAttrFirstSeenAt, err)
	}

	if timer.CandidateWorkers, err = strconv.Atoi(candidate.Value); err != nil {
		return DelayTimer{}, expiresAt, fmt.Errorf("%w: invalid %s: %w", ErrDelayTimerCorrupt, dynamoAttrCandidateWorkers, err)
	}

	if attr, present := item[dynamoAttrExpiresAt]; present {
		expires, ok := attr.(*dynamodbtypes.AttributeValueMemberN)
		if !ok {
			return DelayTimer{}, expiresAt, fmt.Errorf("%w: %s is not a number", ErrDelayTimerCorrupt, dynamoAttrExpiresAt)
		}

		seconds, err := strconv.ParseInt(expires.Value, 10, 64)
		if err != nil {
			return DelayTimer{}, expiresAt, fmt.Errorf("%w: invalid %s: %w", ErrDelayTimerCorrupt, dynamoAttrExpiresAt, err)
		}

		expiresAt = time.Unix(seconds, 0)
	}

	return timer, expiresAt, nil
}
