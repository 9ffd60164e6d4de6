package database

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

var (
	dynamoClient  *DynamoClient
	dynamoHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "dynamo")})
	dynamoLogger  = slog.New(dynamoHandler)
)

type DynamoClient struct {
	Client dynamodbiface.DynamoDBAPI
}

// PaginationOps is an offset window over a query.
type PaginationOps struct {
	Limit int
	Skip  int
}

func newDynamoClient(sess *session.Session) *DynamoClient {
	if dynamoClient == nil {
		dynamoClient = &DynamoClient{
			Client: dynamodb.New(sess),
		}
	}
	return dynamoClient
}

// NewDynamoClientFromAPI wraps any DynamoDB implementation, used by tests and local tooling.
func NewDynamoClientFromAPI(api dynamodbiface.DynamoDBAPI) *DynamoClient {
	return &DynamoClient{Client: api}
}

func (d *DynamoClient) Query(ctx context.Context, input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
	output, err := d.Client.QueryWithContext(ctx, input)

	if err != nil {
		dynamoLogger.Error("query failed", slog.String("table", *input.TableName), slog.String("error", err.Error()))
		return nil, err
	}
	return output, nil
}

func (d *DynamoClient) GetOne(ctx context.Context, input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
	output, err := d.Client.GetItemWithContext(ctx, input)

	if err != nil {
		dynamoLogger.Error("get item failed", slog.String("table", *input.TableName), slog.String("error", err.Error()))
		return nil, err
	}
	return output, nil
}

func (d *DynamoClient) PutItem(ctx context.Context, input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	if output, err := d.Client.PutItemWithContext(ctx, input); err != nil {
		dynamoLogger.Error("put item failed", slog.String("table", *input.TableName), slog.String("error", err.Error()))
		return nil, err
	} else {
		return output, nil
	}
}

func (d *DynamoClient) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
	if output, err := d.Client.UpdateItemWithContext(ctx, input); err != nil {
		dynamoLogger.Error("update item failed", slog.String("table", *input.TableName), slog.String("error", err.Error()))
		return nil, err
	} else {
		return output, nil
	}
}

func (d *DynamoClient) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
	if output, err := d.Client.DeleteItemWithContext(ctx, input); err != nil {
		dynamoLogger.Error("delete item failed", slog.String("table", *input.TableName), slog.String("error", err.Error()))
		return nil, err
	} else {
		return output, nil
	}
}
