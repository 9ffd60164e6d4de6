package credentials

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type CredentialsManager struct {
	manager secretsmanageriface.SecretsManagerAPI
}

var (
	ErrSecretNotFound = errors.New("Secret not found")
)

func NewCredentialsManager(sess *session.Session) *CredentialsManager {
	sm := secretsmanager.New(sess)
	return &CredentialsManager{
		manager: sm,
	}
}

// NewCredentialsManagerWithClient wraps an existing secrets manager client.
func NewCredentialsManagerWithClient(sm secretsmanageriface.SecretsManagerAPI) *CredentialsManager {
	return &CredentialsManager{
		manager: sm,
	}
}

func (cm *CredentialsManager) GetSecret(secretArn string) (*string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     &secretArn,
		VersionStage: aws.String("AWSCURRENT"),
	}
	out, err := cm.manager.GetSecretValue(input)
	var t *secretsmanager.ResourceNotFoundException
	if errors.As(err, &t) {
		return nil, ErrSecretNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.SecretString == nil {
		return nil, ErrSecretNotFound
	}
	return out.SecretString, nil
}

// GetJSONSecret decodes a json secret into v.
func (cm *CredentialsManager) GetJSONSecret(secretArn string, v any) error {
	s, err := cm.GetSecret(secretArn)

	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(*s), v); err != nil {
		return fmt.Errorf("invalid secret payload id=%s error=%w", secretArn, err)
	}

	return nil
}
