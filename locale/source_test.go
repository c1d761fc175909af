package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/liquidgecka/testlib"
)

// Sessions keyed by profile name.
type testSessions map[string]*session.Session

func (s testSessions) CheckProfile(name string) bool {
	_, ok := s[name]
	return ok
}

func (s testSessions) GetSession(name string) *session.Session {
	return s[name]
}

// Starts a server that answers S3 GetObject calls from objects, keyed by
// "/bucket/key".
func newS3Server(T *testlib.T, objects map[string]string) (*httptest.Server, testSessions) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, ok := objects[r.URL.Path]
			if !ok || r.Method != http.MethodGet {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
					`<Error><Code>NoSuchKey</Code>` +
					`<Message>The specified key does not exist.</Message></Error>`))
				return
			}
			w.Write([]byte(body))
		}))
	ses, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials("id", "secret", ""),
		Endpoint:         aws.String(server.URL),
		Region:           aws.String("us-east-1"),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
		MaxRetries:       aws.Int(0),
	})
	T.ExpectSuccess(err)
	return server, testSessions{"test": ses}
}

func TestNewSource_Errors(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	sessions := testSessions{"test": nil}
	for u, msg := range map[string]string{
		"gopher://x/y":                      "unknown URL scheme: gopher",
		"s3://bucket/key":                   "the profile query is required",
		"s3:///key?profile=test":            "the bucket is required",
		"s3://bucket/?profile=test":         "the key is required",
		"s3://bucket/key?profile=missing":   "no AWS profile named 'missing'",
		"s3://bucket/key?profile=test&x=1":  "unknown query 'x'",
		"s3://user@bucket/key?profile=test": "user names are not valid",
		"s3://bucket/key?profile=test#frag": "fragments are not allowed",
		"file://host/etc/locale.toml":       "hosts are not allowed",
		"file:///etc/locale.toml?x=1":       "unknown query 'x'",
		"file:///etc/locale.toml#frag":      "fragments are not allowed",
		"file:":                             "badly formatted file url",
	} {
		_, err := NewSource(u, sessions)
		T.NotEqual(err, nil, u)
		if err != nil {
			T.Equal(strings.Contains(err.Error(), msg), true, u+": "+err.Error())
		}
	}

	// Without any sessions s3 can not be used at all.
	_, err := NewSource("s3://bucket/key?profile=test", nil)
	T.NotEqual(err, nil)
}

func TestFileSource(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	dir := T.TempDir()
	file := filepath.Join(dir, "tr.toml")
	T.ExpectSuccess(os.WriteFile(file, []byte(testDefinition), 0o644))

	for _, u := range []string{file, "file://" + file, "file:" + file} {
		src, err := NewSource(u, nil)
		T.ExpectSuccess(err)
		T.Equal(src.URL(), u)
		data, err := src.Fetch(context.Background())
		T.ExpectSuccess(err)
		T.Equal(string(data), testDefinition)
	}

	// Missing files.
	src, err := NewSource(filepath.Join(dir, "missing.toml"), nil)
	T.ExpectSuccess(err)
	_, err = src.Fetch(context.Background())
	T.NotEqual(err, nil)

	// Files that are far too large.
	big := filepath.Join(dir, "big.toml")
	T.ExpectSuccess(os.WriteFile(big, make([]byte, maxDefinitionSize+1), 0o644))
	src, err = NewSource(big, nil)
	T.ExpectSuccess(err)
	_, err = src.Fetch(context.Background())
	T.NotEqual(err, nil)
	if err != nil {
		T.Equal(strings.Contains(err.Error(), "is larger than"), true)
	}
}

func TestS3Source(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	server, sessions := newS3Server(T, map[string]string{
		"/locales/tr.toml": testDefinition,
	})
	defer server.Close()

	src, err := NewSource("s3://locales/tr.toml?profile=test", sessions)
	T.ExpectSuccess(err)
	T.Equal(src.URL(), "s3://locales/tr.toml?profile=test")
	data, err := src.Fetch(context.Background())
	T.ExpectSuccess(err)
	T.Equal(string(data), testDefinition)

	// Missing objects.
	src, err = NewSource("s3://locales/missing.toml?profile=test", sessions)
	T.ExpectSuccess(err)
	_, err = src.Fetch(context.Background())
	T.NotEqual(err, nil)
	if err != nil {
		T.Equal(strings.Contains(err.Error(), "fetching 's3://locales/missing.toml"), true)
	}
}
