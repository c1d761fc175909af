package config

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/liquidgecka/testlib"
)

func TestAWS_Validate(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	a := &AWS{
		KeyID:     aws.String("id"),
		SecretKey: aws.String("secret"),
		Region:    aws.String("us-west-2"),
		Endpoint:  aws.String("https://s3.example.com"),
	}
	T.Equal(len(a.validate("good")), 0)
	T.NotEqual(a.GetSession(), nil)
	cfg := a.GetSession().Config
	T.Equal(*cfg.Endpoint, "https://s3.example.com")
	T.Equal(*cfg.S3ForcePathStyle, true)
	T.Equal(*cfg.Region, "us-west-2")

	a = &AWS{
		KeyID:           aws.String(""),
		SecretKey:       aws.String("secret"),
		FromEnvironment: aws.Bool(true),
		AssumeRoleARN:   aws.String("not an arn"),
	}
	errs := strings.Join(a.validate("bad"), "\n")
	T.Equal(a.GetSession(), nil)
	for _, want := range []string{
		"aws.bad.key_id can not be an empty string.",
		"aws.bad.assume_role_arn is not a valid arn",
		"aws.bad: More than one AWS authentication method selected.",
	} {
		T.Equal(strings.Contains(errs, want), true, want)
	}
}

func TestProfiles(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	a := &AWS{KeyID: aws.String("id"), SecretKey: aws.String("secret")}
	T.Equal(len(a.validate("p")), 0)
	p := profiles{"p": a.GetSession()}
	T.Equal(p.CheckProfile("p"), true)
	T.Equal(p.CheckProfile("q"), false)
	T.Equal(p.GetSession("p"), a.GetSession())
	T.Equal(p.GetSession("q") == nil, true)
}
