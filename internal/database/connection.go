package database

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/japb1998/wacrm/internal/model"
)

var connectionRepository *ConnectionRepository

type ConnectionRepository struct {
	Client    *DynamoClient
	tableName string
}

func NewConnectionRepo(sess *session.Session) *ConnectionRepository {
	if connectionRepository == nil {
		connectionRepository = NewConnectionRepoWithClient(newDynamoClient(sess), os.Getenv("CONNECTION_TABLE"))
	}

	return connectionRepository
}

func NewConnectionRepoWithClient(client *DynamoClient, tableName string) *ConnectionRepository {
	return &ConnectionRepository{
		Client:    client,
		tableName: tableName,
	}
}

func connectionKey(conn model.Connection) (map[string]*dynamodb.AttributeValue, error) {
	return dynamodbattribute.MarshalMap(map[string]string{
		"email":        conn.Email,
		"connectionId": conn.ConnectionId,
	})
}

// SaveConnection stores the connection id and the user it belongs to.
func (cr *ConnectionRepository) SaveConnection(ctx context.Context, conn model.Connection) error {
	item, err := dynamodbattribute.MarshalMap(conn)

	if err != nil {
		return fmt.Errorf("unable to marshal connection error='%w'", err)
	}
	input := &dynamodb.PutItemInput{
		TableName: &cr.tableName,
		Item:      item,
	}

	_, err = cr.Client.PutItem(ctx, input)

	return err
}

// UpdateNavigation records what the connection's client is currently viewing.
func (cr *ConnectionRepository) UpdateNavigation(ctx context.Context, conn model.Connection) error {
	key, err := connectionKey(conn)

	if err != nil {
		return fmt.Errorf("unable to marshal connection key error='%w'", err)
	}

	values, err := dynamodbattribute.MarshalMap(map[string]string{
		":viewPath":        conn.ViewPath,
		":activeContactId": conn.ActiveContactId,
	})

	if err != nil {
		return fmt.Errorf("unable to marshal navigation error='%w'", err)
	}

	_, err = cr.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &cr.tableName,
		Key:                 key,
		UpdateExpression:    aws.String("SET #viewPath = :viewPath, #activeContactId = :activeContactId"),
		ConditionExpression: aws.String("attribute_exists(#connectionId)"),
		ExpressionAttributeNames: map[string]*string{
			"#viewPath":        aws.String("viewPath"),
			"#activeContactId": aws.String("activeContactId"),
			"#connectionId":    aws.String("connectionId"),
		},
		ExpressionAttributeValues: values,
	})

	if err != nil {
		if isConditionFailed(err) {
			return ErrItemNotFound
		}
		return err
	}

	return nil
}

// DeleteConnection - deletes connection from database
func (cr *ConnectionRepository) DeleteConnection(ctx context.Context, conn model.Connection) error {
	key, err := connectionKey(conn)

	if err != nil {
		return fmt.Errorf("unable to marshal connection error='%w'", err)
	}
	input := &dynamodb.DeleteItemInput{
		TableName: &cr.tableName,
		Key:       key,
	}

	_, err = cr.Client.DeleteItem(ctx, input)

	return err
}

// GetConnectionIds search for all connections of a user.
func (cr *ConnectionRepository) GetConnectionIds(ctx context.Context, email string) ([]model.Connection, error) {
	dynamoKey, err := dynamodbattribute.Marshal(email)

	if err != nil {
		return nil, fmt.Errorf("invalid Email, error='%w'", err)
	}

	input := &dynamodb.QueryInput{
		KeyConditionExpression: aws.String("#email = :email"),
		TableName:              &cr.tableName,
		ExpressionAttributeNames: map[string]*string{
			"#email": aws.String("email"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":email": dynamoKey,
		},
	}

	connections := make([]model.Connection, 0)
	for {
		out, err := cr.Client.Query(ctx, input)

		if err != nil {
			return nil, fmt.Errorf("error while retrieving connection IDs error='%w'", err)
		}

		var page []model.Connection
		if err = dynamodbattribute.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unable to unmarshall connectionIds from items, error:'%w'", err)
		}
		connections = append(connections, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return connections, nil
}
