package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
	"go.opentelemetry.io/otel/attribute"
)

const variableMappingAttr = "variableMapping"

var (
	ErrItemNotFound = errors.New("item not found")
	ErrItemExists   = errors.New("item already exists")
	// ErrAlreadyRecorded reports an inbound message that was already counted on its contact.
	ErrAlreadyRecorded = errors.New("message already recorded")
)

var templateRepo *TemplateRepository

type TemplateRepository struct {
	client    *DynamoClient
	tableName string
	logger    *slog.Logger
}

func NewTemplateRepository(sess *session.Session) *TemplateRepository {
	if templateRepo == nil {
		templateRepo = newTemplateRepository(newDynamoClient(sess), os.Getenv("TEMPLATE_TABLE"))
	}
	return templateRepo
}

func newTemplateRepository(client *DynamoClient, tableName string) *TemplateRepository {
	loggerHandler := slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("repository", "template"), slog.String("tableName", tableName)})
	return &TemplateRepository{
		client:    client,
		tableName: tableName,
		logger:    slog.New(loggerHandler),
	}
}

// NewTemplateRepositoryWithClient builds a repository over an explicit client and table.
func NewTemplateRepositoryWithClient(client *DynamoClient, tableName string) *TemplateRepository {
	return newTemplateRepository(client, tableName)
}

func templateKey(creator, id string) (map[string]*dynamodb.AttributeValue, error) {
	return dynamodbattribute.MarshalMap(map[string]string{
		"createdBy": creator,
		"id":        id,
	})
}

// Create stores a new template. An absent mapping is not written at all.
func (r *TemplateRepository) Create(ctx context.Context, t *model.TemplateItem) error {
	ctx, span := getTracer().Start(ctx, "template-repository-create")
	defer span.End()

	i, err := dynamodbattribute.MarshalMap(t)

	if err != nil {
		return fmt.Errorf("failed to marshal template error=%w", err)
	}

	if !t.VariableMapping.IsPresent() {
		delete(i, variableMappingAttr)
	}

	input := &dynamodb.PutItemInput{
		TableName:           &r.tableName,
		Item:                i,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]*string{
			"#id": aws.String("id"),
		},
	}

	_, err = r.client.PutItem(ctx, input)

	if err != nil {
		if isConditionFailed(err) {
			return ErrItemExists
		}
		return err
	}

	r.logger.Info("template created", slog.String("id", t.Id))

	return nil
}

// SetVariableMapping replaces the mapping of a template. Absent removes the
// attribute so readers can tell "never configured" from a configured mapping.
func (r *TemplateRepository) SetVariableMapping(ctx context.Context, creator, id string, m mapping.Mapping) (*model.TemplateItem, error) {
	ctx, span := getTracer().Start(ctx, "template-repository-set-mapping")
	defer span.End()
	span.SetAttributes(attribute.Bool("mapping.present", m.IsPresent()), attribute.Int("mapping.size", m.Len()))

	key, err := templateKey(creator, id)

	if err != nil {
		return nil, err
	}

	updatedAt, err := dynamodbattribute.Marshal(time.Now().UTC())

	if err != nil {
		return nil, fmt.Errorf("failed to marshal updatedAt value error=%w", err)
	}

	names := map[string]*string{
		"#id":              aws.String("id"),
		"#updatedAt":       aws.String("updatedAt"),
		"#variableMapping": aws.String(variableMappingAttr),
	}
	values := map[string]*dynamodb.AttributeValue{
		":updatedAt": updatedAt,
	}

	var updateExpression string
	if m.IsPresent() {
		val, err := dynamodbattribute.Marshal(m)

		if err != nil {
			return nil, fmt.Errorf("failed to marshal variableMapping value error=%w", err)
		}

		values[":variableMapping"] = val
		updateExpression = "SET #updatedAt = :updatedAt, #variableMapping = :variableMapping"
	} else {
		updateExpression = "SET #updatedAt = :updatedAt REMOVE #variableMapping"
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 &r.tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	}

	out, err := r.client.UpdateItem(ctx, input)

	if err != nil {
		if isConditionFailed(err) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var t model.TemplateItem

	if err = dynamodbattribute.UnmarshalMap(out.Attributes, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template error=%w", err)
	}

	return &t, nil
}

// GetByKey gets template by composed key. A missing template is (nil, nil).
func (r *TemplateRepository) GetByKey(ctx context.Context, creator, id string) (*model.TemplateItem, error) {
	ctx, span := getTracer().Start(ctx, "template-repository-get")
	defer span.End()

	key, err := templateKey(creator, id)

	if err != nil {
		return nil, err
	}

	input := &dynamodb.GetItemInput{
		TableName: &r.tableName,
		Key:       key,
	}

	out, err := r.client.GetOne(ctx, input)

	if err != nil {
		return nil, fmt.Errorf("failed to get template error=%w", err)
	}

	if out == nil || out.Item == nil {
		r.logger.Info("template not found", slog.Group("key", "id", id, "creator", creator))
		return nil, nil
	}

	var t model.TemplateItem

	err = dynamodbattribute.UnmarshalMap(out.Item, &t)

	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByCreator - gets templates by creator, reading until the page is covered.
func (r *TemplateRepository) GetByCreator(ctx context.Context, creator string, p *PaginationOps) ([]*model.TemplateItem, error) {
	ctx, span := getTracer().Start(ctx, "template-repository-list")
	defer span.End()

	creatorAttr, err := dynamodbattribute.Marshal(creator)

	if err != nil {
		return nil, fmt.Errorf("failed to marshal creator. error=%w", err)
	}
	templateItems := make([]*model.TemplateItem, 0)
	var lastEvaluatedKey map[string]*dynamodb.AttributeValue
	var queryInput = &dynamodb.QueryInput{
		TableName:              &r.tableName,
		ScanIndexForward:       aws.Bool(true),
		KeyConditionExpression: aws.String("#createdBy = :createdBy"),
		ExpressionAttributeNames: map[string]*string{
			"#createdBy": aws.String("createdBy"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":createdBy": creatorAttr,
		},
	}

	// loop until lastEvaluated key is nil or we reach our limit setup by the pagination.
	for {
		var templates []*model.TemplateItem
		queryInput.ExclusiveStartKey = lastEvaluatedKey

		output, err := r.client.Query(ctx, queryInput)

		if err != nil {
			r.logger.Error("failed to query templates", slog.String("error", err.Error()))
			return nil, errors.New("error while retrieving templates")
		}

		err = dynamodbattribute.UnmarshalListOfMaps(output.Items, &templates)

		if err != nil {
			return nil, fmt.Errorf("error while retrieving templates error: %w", err)
		}

		templateItems = append(templateItems, templates...)

		if output.LastEvaluatedKey == nil || len(templateItems) >= p.Skip+p.Limit {
			break
		}

		lastEvaluatedKey = output.LastEvaluatedKey
	}

	return window(templateItems, p), nil
}

// GetTotalCount counts every template of a creator.
func (r *TemplateRepository) GetTotalCount(ctx context.Context, creator string) (int64, error) {
	creatorAttr, err := dynamodbattribute.Marshal(creator)

	if err != nil {
		return 0, fmt.Errorf("failed to marshal creator. error=%w", err)
	}
	var count int64
	var queryInput = &dynamodb.QueryInput{
		TableName:              &r.tableName,
		KeyConditionExpression: aws.String("#createdBy = :createdBy"),
		ExpressionAttributeNames: map[string]*string{
			"#createdBy": aws.String("createdBy"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":createdBy": creatorAttr,
		},
		Select: aws.String(dynamodb.SelectCount),
	}

	for {
		output, err := r.client.Query(ctx, queryInput)
		if err != nil {
			return 0, fmt.Errorf("error counting templates by creator: %w", err)
		}
		count += aws.Int64Value(output.Count)

		if output.LastEvaluatedKey == nil {
			break
		}
		queryInput.ExclusiveStartKey = output.LastEvaluatedKey
	}
	return count, nil
}

// Delete removes a template by its composed key.
func (r *TemplateRepository) Delete(ctx context.Context, creator, id string) error {
	key, err := templateKey(creator, id)

	if err != nil {
		return fmt.Errorf("invalid key error=%w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName: &r.tableName,
		Key:       key,
	}

	_, err = r.client.DeleteItem(ctx, input)

	if err != nil {
		return fmt.Errorf("failed to delete template error=%w", err)
	}

	return nil
}

func isConditionFailed(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}

func window[T any](items []T, p *PaginationOps) []T {
	if p == nil {
		return items
	}
	if p.Skip >= len(items) {
		return []T{}
	}
	end := p.Skip + p.Limit
	if p.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}
