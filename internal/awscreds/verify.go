package awscreds

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/cloudkeeper/ck-prism/models"
)

type Verifier interface {
	VerifySession(ctx context.Context, region string, creds *models.AWSCredentials) (string, error)
}

// STSVerifier checks freshly exchanged credentials against STS and returns
// the assumed-role ARN. Used as a post-login sanity check; callers treat a
// failure as a warning, not a fatal error.
type STSVerifier struct{}

func NewSTSVerifier() *STSVerifier {
	return &STSVerifier{}
}

func (v *STSVerifier) VerifySession(ctx context.Context, region string, creds *models.AWSCredentials) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			creds.SessionToken,
		)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	if out.Arn == nil {
		return "", fmt.Errorf("caller identity returned no ARN")
	}

	return *out.Arn, nil
}
