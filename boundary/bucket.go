/*
Copyright © 2020 the helioremap authors.
This file is part of helioremap.

helioremap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

helioremap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with helioremap.  If not, see <http://www.gnu.org/licenses/>.
*/

package boundary

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
)

// OpenBucket opens the blob storage bucket referred to by u and returns
// it along with the key prefix given by the rest of u.
// For "gs://name/prefix" and "s3://name/prefix", the bucket is name.
// For "file:///dir", the bucket is the local directory dir and the prefix
// is empty.
func OpenBucket(ctx context.Context, u *url.URL) (*blob.Bucket, string, error) {
	switch u.Scheme {
	case "file":
		dir := u.Host + u.Path
		if dir == "" {
			return nil, "", fmt.Errorf("boundary: no directory in %s", u)
		}
		b, err := fileblob.NewBucket(dir)
		if err != nil {
			return nil, "", fmt.Errorf("boundary: opening %s: %v", u, err)
		}
		return b, "", nil
	case "gs":
		b, err := gsBucket(ctx, u.Hostname())
		if err != nil {
			return nil, "", fmt.Errorf("boundary: opening %s: %v", u, err)
		}
		return b, strings.TrimPrefix(u.Path, "/"), nil
	case "s3":
		b, err := s3Bucket(ctx, u.Hostname())
		if err != nil {
			return nil, "", fmt.Errorf("boundary: opening %s: %v", u, err)
		}
		return b, strings.TrimPrefix(u.Path, "/"), nil
	default:
		return nil, "", fmt.Errorf("boundary: invalid storage provider %q", u.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See https://cloud.google.com/docs/authentication/getting-started
	// for information on credentials.
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket using the credentials in the
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables and
// the region in AWS_REGION.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-west-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s, err := session.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, s, name)
}
