package awssess

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

var sess *session.Session

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustGetSession returns the process wide session. Locally it reads the
// shared config profile named by AWS_PROFILE.
func MustGetSession() *session.Session {

	if sess != nil {
		return sess
	}

	switch os.Getenv("STAGE") {
	case "local":

		sess = session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
			Profile:           envOr("AWS_PROFILE", "personal"),
			Config: aws.Config{
				Region: aws.String(envOr("AWS_REGION", "us-east-1")),
			},
		}))
	default:
		sess = session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))
	}
	return sess
}
