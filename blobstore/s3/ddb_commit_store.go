package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SuperSamus/prime/blobstore"
)

// CommitStore pairs an S3 checkpoint store with a DynamoDB table that
// tracks the latest committed checkpoint of each generation run. DynamoDB
// conditional writes provide the atomic compare-and-swap S3 lacks, so
// multiple writers resuming the same run cannot silently overwrite each
// other's progress.
//
// Table schema:
//   - Partition key: run_id (string), one item set per generation run
//   - Sort key: version (number), monotonically increasing commit version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name prime-commits \
//	  --attribute-definitions AttributeName=run_id,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=run_id,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	store *Store
	ddb   DDBClient
	table string
	runID string
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// Commit is a durable pointer to one committed checkpoint.
type Commit struct {
	// Version is the monotonically increasing commit version.
	Version uint64

	// Key is the checkpoint blob's name in the S3 store.
	Key string

	// Frontier is the smallest value the checkpointed run has not examined.
	Frontier uint64
}

// NewCommitStore creates a commit store for one generation run.
func NewCommitStore(store *Store, ddb DDBClient, table, runID string) *CommitStore {
	return &CommitStore{
		store: store,
		ddb:   ddb,
		table: table,
		runID: runID,
	}
}

// Blobs returns the underlying S3 store for checkpoint payload IO.
func (s *CommitStore) Blobs() blobstore.Store {
	return s.store
}

// Latest returns the most recent committed checkpoint pointer. It returns
// blobstore.ErrNotFound when the run has no commits yet.
func (s *CommitStore) Latest(ctx context.Context) (Commit, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("run_id = :run"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":run": &types.AttributeValueMemberS{Value: s.runID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return Commit{}, fmt.Errorf("query commits: %w", err)
	}
	if len(resp.Items) == 0 {
		return Commit{}, blobstore.ErrNotFound
	}

	return parseCommit(resp.Items[0])
}

// CommitCheckpoint records key as the next checkpoint version, conditional
// on no other writer having claimed it. On success it returns the new
// version; a lost race returns ErrConcurrentModification and the caller
// should re-read Latest before retrying.
func (s *CommitStore) CommitCheckpoint(ctx context.Context, key string, frontier uint64) (uint64, error) {
	var current uint64
	switch latest, err := s.Latest(ctx); {
	case err == nil:
		current = latest.Version
	case errors.Is(err, blobstore.ErrNotFound):
		current = 0
	default:
		return 0, err
	}

	next := current + 1
	_, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"run_id":         &types.AttributeValueMemberS{Value: s.runID},
			"version":        &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"checkpoint_key": &types.AttributeValueMemberS{Value: key},
			"frontier":       &types.AttributeValueMemberN{Value: strconv.FormatUint(frontier, 10)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("commit version %d: %w", next, err)
	}

	return next, nil
}

// Release drops the commit record for a version, used to unwind a commit
// whose checkpoint blob failed to persist.
func (s *CommitStore) Release(ctx context.Context, version uint64) error {
	_, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"run_id":  &types.AttributeValueMemberS{Value: s.runID},
			"version": &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
		},
	})
	return err
}

func parseCommit(item map[string]types.AttributeValue) (Commit, error) {
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return Commit{}, errors.New("invalid version attribute")
	}
	keyAttr, ok := item["checkpoint_key"].(*types.AttributeValueMemberS)
	if !ok {
		return Commit{}, errors.New("invalid checkpoint_key attribute")
	}
	frontierAttr, ok := item["frontier"].(*types.AttributeValueMemberN)
	if !ok {
		return Commit{}, errors.New("invalid frontier attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return Commit{}, fmt.Errorf("parse version: %w", err)
	}
	frontier, err := strconv.ParseUint(frontierAttr.Value, 10, 64)
	if err != nil {
		return Commit{}, fmt.Errorf("parse frontier: %w", err)
	}

	return Commit{
		Version:  version,
		Key:      keyAttr.Value,
		Frontier: frontier,
	}, nil
}
