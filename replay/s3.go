// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"bytes"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"os"
	"os/user"
	"path"
)

// AWSProfile is the shared credentials profile used outside of EC2.
const AWSProfile = "tuxcollide"

// S3Store uploads replays to a bucket.
type S3Store struct {
	svc    *s3.S3
	bucket string
	prefix string
}

// NewS3Store connects to bucket in region. Keys are prefixed with prefix.
func NewS3Store(region, bucket, prefix string) (*S3Store, error) {
	sess, err := getAWSSession(region)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &S3Store{svc: s3.New(sess), bucket: bucket, prefix: prefix}, nil
}

func (store *S3Store) Upload(name string, data []byte) error {
	req, _ := store.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(store.bucket),
		Key:          aws.String(path.Join(store.prefix, name)),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String("no-transform, private"),
		ContentType:  aws.String(ContentType),
	})
	if err := req.Send(); err != nil {
		return fmt.Errorf("upload replay %s: %w", name, err)
	}
	return nil
}

func (store *S3Store) String() string {
	return "s3://" + path.Join(store.bucket, store.prefix)
}

// getAWSSession prefers shared credentials and falls back to the EC2 instance role.
func getAWSSession(region string) (*session.Session, error) {
	usr, err := user.Current()
	if err != nil {
		return nil, err
	}
	credentialsPath := fmt.Sprintf("%s/.aws/credentials", usr.HomeDir)
	var creds *credentials.Credentials
	if _, statErr := os.Stat(credentialsPath); statErr == nil {
		creds = credentials.NewSharedCredentials(credentialsPath, AWSProfile)
	} else {
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: ec2metadata.New(session.New(aws.NewConfig()))})
	}
	return session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
}
