package assets

import (
	"leaguerats/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Folders of the asset bucket.
const (
	championIconPrefix = "champions/icons/"
	rankIconPrefix     = "ranks/icons/"
	regionIconPrefix   = "regions/icons/"
	itemIconPrefix     = "items/"
	playerImagePrefix  = "players/"
	teamLogoPrefix     = "teams/"
	summonerIconPrefix = "summoners/"
	iconExtension      = ".png"
)

// Create the S3 client for the configured bucket endpoint.
func NewS3Client(bucket config.BucketConfiguration) *s3.Client {
	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
			o.UsePathStyle = true
		}
	})
}
