package config

import (
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
)

// An AWS profile that s3:// locale sources can refer to with
// ?profile=<name>.
type AWS struct {
	KeyID           *string `toml:"key_id"`
	Region          *string `toml:"region"`
	SecretKey       *string `toml:"secret_key"`
	AssumeRoleARN   *string `toml:"assume_role_arn"`
	Profile         *string `toml:"profile"`
	FromEnvironment *bool   `toml:"from_environment"`
	FromEC2Role     *bool   `toml:"from_ec2_role"`

	// Points the profile at an S3 compatible store instead of AWS. Path
	// style addressing is used when this is set.
	Endpoint *string `toml:"endpoint"`

	// Stores the actual AWS session that was initialized using the credentials
	// and configuration provided here.
	session *session.Session `toml:"-"`
}

// Returns the session built during validation, or nil if validation failed.
func (a *AWS) GetSession() *session.Session {
	return a.session
}

// Validate the contents of the AWS object.
func (a *AWS) validate(name string) []string {
	var errors []string
	switch {
	case a.KeyID == nil && a.SecretKey == nil:
	case a.KeyID != nil && a.SecretKey != nil:
	default:
		errors = append(errors, fmt.Sprintf(
			"aws.%s.key_id and aws.%s.secret_key must be used together.",
			name,
			name,
		))
	}
	for field, v := range map[string]*string{
		"key_id":     a.KeyID,
		"secret_key": a.SecretKey,
		"region":     a.Region,
		"profile":    a.Profile,
	} {
		if v != nil && *v == "" {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.%s can not be an empty string.",
				name,
				field))
		}
	}
	if a.Endpoint != nil {
		if u, err := url.Parse(*a.Endpoint); err != nil {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.endpoint is not a valid url: %s",
				name,
				err.Error()))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.endpoint must be an http or https url.",
				name))
		}
	}
	if a.AssumeRoleARN != nil {
		if *a.AssumeRoleARN == "" {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.assume_role_arn can not be an empty string.",
				name,
			))
		} else if parsed, err := arn.Parse(*a.AssumeRoleARN); err != nil {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.assume_role_arn is not a valid arn: %s",
				name,
				err.Error(),
			))
		} else if parsed.Service != "iam" {
			errors = append(errors, fmt.Sprintf(
				"aws.%s.assume_role_arn is not an iam ARN (it is %s instead)",
				name,
				parsed.Service,
			))
		}
	}

	// Count the methods that are supposed to be used to auth. If there is
	// more than one then report an error.
	authMethods := 0
	if a.KeyID != nil {
		authMethods++
	}
	if a.FromEnvironment != nil && *a.FromEnvironment {
		authMethods++
	}
	if a.FromEC2Role != nil && *a.FromEC2Role {
		authMethods++
	}
	if a.Profile != nil {
		authMethods++
	}
	if authMethods > 1 {
		errors = append(errors, fmt.Sprintf(
			"aws.%s: More than one AWS authentication method selected.",
			name,
		))
	}

	if len(errors) == 0 {
		if err := a.newSession(); err != nil {
			errors = append(errors, fmt.Sprintf("aws.%s: %s", name, err))
		}
	}
	return errors
}

// The parts of aws.Config shared by the base session and the assumed role
// session.
func (a *AWS) config() aws.Config {
	cfg := aws.Config{Region: a.Region}
	if a.Endpoint != nil {
		cfg.Endpoint = a.Endpoint
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return cfg
}

// Builds the session from the validated configuration.
func (a *AWS) newSession() error {
	opts := session.Options{Config: a.config()}
	switch {
	case a.KeyID != nil:
		opts.Config.Credentials = credentials.NewStaticCredentials(
			*a.KeyID,
			*a.SecretKey,
			"")
	case a.FromEnvironment != nil && *a.FromEnvironment:
		opts.Config.Credentials = credentials.NewEnvCredentials()
	case a.Profile != nil:
		opts.Profile = *a.Profile
	case a.FromEC2Role != nil && *a.FromEC2Role:
		opts.Config.Credentials = ec2rolecreds.NewCredentials(
			session.Must(session.NewSession(aws.NewConfig())))
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return fmt.Errorf("Error initializing the AWS session: %s", err)
	}

	// Assumed roles need a second session that uses the first one to fetch
	// credentials.
	if a.AssumeRoleARN != nil {
		cfg := a.config()
		cfg.Credentials = stscreds.NewCredentials(sess, *a.AssumeRoleARN)
		sess, err = session.NewSession(&cfg)
		if err != nil {
			return fmt.Errorf(
				"Error assuming role %q: %s",
				*a.AssumeRoleARN,
				err)
		}
	}
	a.session = sess
	return nil
}

// Implements locale.Sessions over the validated profiles.
type profiles map[string]*session.Session

func (p profiles) CheckProfile(n string) bool {
	_, ok := p[n]
	return ok
}

func (p profiles) GetSession(n string) *session.Session {
	return p[n]
}
