package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/japb1998/wacrm/internal/model"
)

// PhoneIndex is the GSI keyed by createdBy + phoneNumber.
const PhoneIndex = "phone-index"

var (
	contactHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("repository", "contact")})
	contactLogger  = slog.New(contactHandler)
)

var contactRepository *ContactRepository

type ContactRepository struct {
	Client    *DynamoClient
	tableName string
}

// PatchContactItem carries the fields of a contact update; nil fields are left alone.
type PatchContactItem struct {
	Name       *string
	Tags       []string
	CustomData map[string]string
}

func NewContactRepo(sess *session.Session) *ContactRepository {
	if contactRepository != nil {
		return contactRepository
	}
	contactRepository = NewContactRepoWithClient(newDynamoClient(sess), os.Getenv("CONTACT_TABLE"))

	return contactRepository
}

func NewContactRepoWithClient(client *DynamoClient, tableName string) *ContactRepository {
	return &ContactRepository{
		Client:    client,
		tableName: tableName,
	}
}

func contactKey(creator, id string) (map[string]*dynamodb.AttributeValue, error) {
	return dynamodbattribute.MarshalMap(map[string]string{
		"createdBy": creator,
		"id":        id,
	})
}

func (c *ContactRepository) CreateContact(ctx context.Context, contact model.ContactItem) (model.ContactItem, error) {
	item, err := dynamodbattribute.MarshalMap(contact)

	if err != nil {
		return model.ContactItem{}, fmt.Errorf("unable to marshal contact error='%w'", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           &c.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]*string{
			"#id": aws.String("id"),
		},
	}

	if _, err = c.Client.PutItem(ctx, input); err != nil {
		if isConditionFailed(err) {
			return model.ContactItem{}, ErrItemExists
		}
		return model.ContactItem{}, fmt.Errorf("failed to create contact error='%w'", err)
	}

	return contact, nil
}

// GetContactById returns (nil, nil) when the contact does not exist.
func (c *ContactRepository) GetContactById(ctx context.Context, creator, id string) (*model.ContactItem, error) {
	key, err := contactKey(creator, id)

	if err != nil {
		return nil, err
	}

	out, err := c.Client.GetOne(ctx, &dynamodb.GetItemInput{
		TableName: &c.tableName,
		Key:       key,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get contact error='%w'", err)
	}

	if out.Item == nil {
		return nil, nil
	}

	var contact model.ContactItem

	if err := dynamodbattribute.UnmarshalMap(out.Item, &contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact error='%w'", err)
	}

	return &contact, nil
}

// GetContactByPhone looks a contact up through the phone index.
func (c *ContactRepository) GetContactByPhone(ctx context.Context, creator, phone string) (*model.ContactItem, error) {
	values, err := dynamodbattribute.MarshalMap(map[string]string{
		":createdBy":   creator,
		":phoneNumber": phone,
	})

	if err != nil {
		return nil, fmt.Errorf("invalid phone lookup error='%w'", err)
	}

	out, err := c.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &c.tableName,
		IndexName:              aws.String(PhoneIndex),
		KeyConditionExpression: aws.String("#createdBy = :createdBy AND #phoneNumber = :phoneNumber"),
		ExpressionAttributeNames: map[string]*string{
			"#createdBy":   aws.String("createdBy"),
			"#phoneNumber": aws.String("phoneNumber"),
		},
		ExpressionAttributeValues: values,
		Limit:                     aws.Int64(1),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to query contact by phone error='%w'", err)
	}

	if len(out.Items) == 0 {
		return nil, nil
	}

	var contact model.ContactItem

	if err := dynamodbattribute.UnmarshalMap(out.Items[0], &contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact error='%w'", err)
	}

	return &contact, nil
}

// GetContacts pages through the contacts of a creator.
func (c *ContactRepository) GetContacts(ctx context.Context, creator string, p *PaginationOps) ([]model.ContactItem, error) {
	ctx, span := getTracer().Start(ctx, "contact-repository-list")
	defer span.End()

	queryValue, err := dynamodbattribute.MarshalMap(map[string]any{
		":createdBy": creator,
	})

	if err != nil {
		contactLogger.Error("error marshalling query key.", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid creator: %s", creator)
	}

	contacts := make([]model.ContactItem, 0)
	queryInput := &dynamodb.QueryInput{
		TableName:                 &c.tableName,
		KeyConditionExpression:    aws.String("#createdBy = :createdBy"),
		ExpressionAttributeValues: queryValue,
		ExpressionAttributeNames: map[string]*string{
			"#createdBy": aws.String("createdBy"),
		},
	}

	for {
		var items []model.ContactItem
		output, err := c.Client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("error querying contact items error: %w", err)
		}

		if err = dynamodbattribute.UnmarshalListOfMaps(output.Items, &items); err != nil {
			contactLogger.Error("error unmarshalling contacts.", slog.String("error", err.Error()))
			return nil, fmt.Errorf("error unmarshalling contacts")
		}

		contacts = append(contacts, items...)
		if output.LastEvaluatedKey == nil || (p != nil && p.Limit > 0 && len(contacts) >= p.Skip+p.Limit) {
			break
		}
		queryInput.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return window(contacts, p), nil
}

func (c *ContactRepository) ContactCount(ctx context.Context, creator string) (int64, error) {
	queryValue, err := dynamodbattribute.MarshalMap(map[string]any{
		":createdBy": creator,
	})

	if err != nil {
		return 0, fmt.Errorf("invalid creator: %s", creator)
	}

	var count int64
	queryInput := &dynamodb.QueryInput{
		TableName:                 &c.tableName,
		KeyConditionExpression:    aws.String("#createdBy = :createdBy"),
		ExpressionAttributeValues: queryValue,
		ExpressionAttributeNames: map[string]*string{
			"#createdBy": aws.String("createdBy"),
		},
		Select: aws.String(dynamodb.SelectCount),
	}

	for {
		output, err := c.Client.Query(ctx, queryInput)
		if err != nil {
			return 0, fmt.Errorf("error counting contacts error: %w", err)
		}
		count += aws.Int64Value(output.Count)
		if output.LastEvaluatedKey == nil {
			break
		}
		queryInput.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return count, nil
}

// CustomFieldKeys collects every custom_data key used by the creator's contacts, sorted.
func (c *ContactRepository) CustomFieldKeys(ctx context.Context, creator string) ([]string, error) {
	ctx, span := getTracer().Start(ctx, "contact-repository-custom-keys")
	defer span.End()

	queryValue, err := dynamodbattribute.MarshalMap(map[string]any{
		":createdBy": creator,
	})

	if err != nil {
		return nil, fmt.Errorf("invalid creator: %s", creator)
	}

	queryInput := &dynamodb.QueryInput{
		TableName:                 &c.tableName,
		KeyConditionExpression:    aws.String("#createdBy = :createdBy"),
		ProjectionExpression:      aws.String("#customData"),
		ExpressionAttributeValues: queryValue,
		ExpressionAttributeNames: map[string]*string{
			"#createdBy":  aws.String("createdBy"),
			"#customData": aws.String("customData"),
		},
	}

	seen := make(map[string]struct{})
	for {
		output, err := c.Client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("error querying custom fields error: %w", err)
		}

		for _, item := range output.Items {
			if cd, ok := item["customData"]; ok && cd.M != nil {
				for k := range cd.M {
					seen[k] = struct{}{}
				}
			}
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		queryInput.ExclusiveStartKey = output.LastEvaluatedKey
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

// UpdateContact applies a patch and returns the stored contact.
func (c *ContactRepository) UpdateContact(ctx context.Context, creator, id string, patch PatchContactItem) (*model.ContactItem, error) {
	key, err := contactKey(creator, id)

	if err != nil {
		return nil, err
	}

	exprs := []string{"#updatedAt = :updatedAt"}
	names := map[string]*string{
		"#id":        aws.String("id"),
		"#updatedAt": aws.String("updatedAt"),
	}
	values := map[string]any{
		":updatedAt": time.Now().UTC(),
	}

	if patch.Name != nil {
		exprs = append(exprs, "#name = :name")
		names["#name"] = aws.String("name")
		values[":name"] = *patch.Name
	}
	if patch.Tags != nil {
		exprs = append(exprs, "#tags = :tags")
		names["#tags"] = aws.String("tags")
		values[":tags"] = patch.Tags
	}
	if patch.CustomData != nil {
		exprs = append(exprs, "#customData = :customData")
		names["#customData"] = aws.String("customData")
		values[":customData"] = patch.CustomData
	}

	return c.update(ctx, key, "SET "+strings.Join(exprs, ", "), "attribute_exists(#id)", names, values)
}

// RecordInbound bumps the unread counter and last message time of a contact.
// A messageId equal to the last one recorded is not counted again; the stored
// contact is returned with ErrAlreadyRecorded.
func (c *ContactRepository) RecordInbound(ctx context.Context, creator, id, messageId string, at time.Time) (*model.ContactItem, error) {
	key, err := contactKey(creator, id)

	if err != nil {
		return nil, err
	}

	names := map[string]*string{
		"#id":            aws.String("id"),
		"#unreadCount":   aws.String("unreadCount"),
		"#lastMessageAt": aws.String("lastMessageAt"),
		"#lastMessageId": aws.String("lastMessageId"),
		"#updatedAt":     aws.String("updatedAt"),
	}
	values := map[string]any{
		":one": 1,
		":at":  at.UTC(),
		":mid": messageId,
	}
	cond := "attribute_exists(#id) AND (attribute_not_exists(#lastMessageId) OR #lastMessageId <> :mid)"

	contact, err := c.update(ctx, key, "SET #lastMessageAt = :at, #lastMessageId = :mid, #updatedAt = :at ADD #unreadCount :one", cond, names, values)

	if !errors.Is(err, ErrItemNotFound) {
		return contact, err
	}

	// the condition also fails on a redelivered message, tell the two apart.
	existing, getErr := c.GetContactById(ctx, creator, id)

	if getErr != nil {
		return nil, getErr
	}

	if existing == nil || existing.LastMessageId != messageId {
		return nil, ErrItemNotFound
	}

	contactLogger.Info("inbound message already recorded", slog.String("contactId", id), slog.String("messageId", messageId))

	return existing, ErrAlreadyRecorded
}

func (c *ContactRepository) update(ctx context.Context, key map[string]*dynamodb.AttributeValue, expr, cond string, names map[string]*string, values map[string]any) (*model.ContactItem, error) {
	av, err := dynamodbattribute.MarshalMap(values)

	if err != nil {
		return nil, fmt.Errorf("failed to marshal update values error='%w'", err)
	}

	out, err := c.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &c.tableName,
		Key:                       key,
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: av,
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	})

	if err != nil {
		if isConditionFailed(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update contact error='%w'", err)
	}

	var contact model.ContactItem

	if err := dynamodbattribute.UnmarshalMap(out.Attributes, &contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact error='%w'", err)
	}

	return &contact, nil
}

func (c *ContactRepository) DeleteContact(ctx context.Context, creator, id string) error {
	key, err := contactKey(creator, id)

	if err != nil {
		return err
	}

	_, err = c.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &c.tableName,
		Key:       key,
	})

	if err != nil {
		return fmt.Errorf("failed to delete contact error='%w'", err)
	}

	return nil
}
