package locale

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// Locale definitions larger than this are refused.
const maxDefinitionSize = 1 << 20

// Somewhere a locale definition can be fetched from.
type Source interface {
	// Fetches the raw TOML definition.
	Fetch(ctx context.Context) ([]byte, error)

	// The URL that was used to create this Source.
	URL() string
}

// Supplies AWS sessions by profile name for s3:// sources.
type Sessions interface {
	// Returns true if a profile has been configured.
	CheckProfile(name string) bool

	// Gets the AWS session that will be used for fetching definitions.
	GetSession(name string) *session.Session
}

// Parses a source URL. Supported forms are a bare path, file:path,
// file:///path and s3://bucket/key?profile=name, where name is one of the
// AWS profiles known to sessions.
func NewSource(u string, sessions Sessions) (Source, error) {
	ud, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	qv := ud.Query()

	switch ud.Scheme {
	case "s3":
		profile := qv.Get("profile")
		delete(qv, "profile")
		for v := range qv {
			return nil, fmt.Errorf("unknown query '%s' on s3: url", v)
		}
		switch {
		case ud.User != nil:
			return nil, fmt.Errorf("user names are not valid on s3: urls")
		case ud.Host == "":
			return nil, fmt.Errorf("the bucket is required for s3: urls")
		case strings.TrimPrefix(ud.Path, "/") == "":
			return nil, fmt.Errorf("the key is required for s3: urls")
		case ud.Fragment != "":
			return nil, fmt.Errorf("fragments are not allowed on s3: urls")
		case profile == "":
			return nil, fmt.Errorf("the profile query is required for s3: urls")
		case sessions == nil || !sessions.CheckProfile(profile):
			return nil, fmt.Errorf("no AWS profile named '%s'", profile)
		}
		return &s3Source{
			sourceURL: u,
			bucket:    ud.Host,
			key:       strings.TrimPrefix(ud.Path, "/"),
			profile:   profile,
			sessions:  sessions,
		}, nil

	case "", "file":
		for v := range qv {
			return nil, fmt.Errorf("unknown query '%s' on file: url", v)
		}
		switch {
		case ud.User != nil:
			return nil, fmt.Errorf("user names are not allowed in file: urls")
		case ud.Host != "":
			return nil, fmt.Errorf("hosts are not allowed in file: urls")
		case ud.Fragment != "":
			return nil, fmt.Errorf("fragments are not allowed in file: urls")
		case ud.Path != "":
			return &fileSource{sourceURL: u, file: ud.Path}, nil
		case ud.Opaque != "":
			return &fileSource{sourceURL: u, file: ud.Opaque}, nil
		}
		return nil, fmt.Errorf("badly formatted file url")

	default:
		return nil, fmt.Errorf("unknown URL scheme: %s", ud.Scheme)
	}
}

// Reads size limited data from r.
func readDefinition(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDefinitionSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", source)
	}
	if len(data) > maxDefinitionSize {
		return nil, fmt.Errorf(
			"%s is larger than %d bytes",
			source,
			maxDefinitionSize)
	}
	return data, nil
}

// Loads a definition from the local file system.
type fileSource struct {
	sourceURL string
	file      string
}

func (f *fileSource) Fetch(ctx context.Context) ([]byte, error) {
	fd, err := os.Open(f.file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return readDefinition(fd, f.sourceURL)
}

func (f *fileSource) URL() string {
	return f.sourceURL
}

// Loads a definition from an S3 object.
type s3Source struct {
	sourceURL string
	bucket    string
	key       string
	profile   string
	sessions  Sessions
}

func (s *s3Source) Fetch(ctx context.Context) ([]byte, error) {
	ses := s.sessions.GetSession(s.profile)
	if ses == nil {
		return nil, fmt.Errorf(
			"AWS profile named %s does not exist",
			s.profile)
	}
	goi := s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	}
	goo, err := s3.New(ses).GetObjectWithContext(ctx, &goi)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching '%s'", s.sourceURL)
	}
	defer goo.Body.Close()
	return readDefinition(goo.Body, s.sourceURL)
}

func (s *s3Source) URL() string {
	return s.sourceURL
}
