package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// Uploader is the subset of the S3 client used to ship logs.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FileSink keeps a temporary copy of every log line so it can be uploaded later.
type FileSink struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
}

// Create the logger writing to stdout and to a temporary file.
func New(level string) (zerolog.Logger, *FileSink, error) {
	sink, err := NewFileSink()
	if err != nil {
		return zerolog.Logger{}, nil, err
	}

	return NewWithWriter(level, io.MultiWriter(os.Stdout, sink)), sink, nil
}

// Create a logger over any writer.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(parsed)
}

// Create the sink with a temporary file.
func NewFileSink() (*FileSink, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	return &FileSink{
		logFile:  f,
		filePath: f.Name(),
	}, nil
}

// Write a log line to the file.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logFile.Write(p)
}

// Path of the temporary file.
func (s *FileSink) Path() string {
	return s.filePath
}

// Clean the file contents.
func (s *FileSink) CleanFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clean()
}

func (s *FileSink) clean() error {
	if err := s.logFile.Truncate(0); err != nil {
		return err
	}
	_, err := s.logFile.Seek(0, io.SeekStart)
	return err
}

// Upload the log to a s3 bucket and truncate it on success.
func (s *FileSink) UploadToS3Bucket(ctx context.Context, client Uploader, bucket string, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.logFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	// Read everything so the body has a known length.
	content, err := io.ReadAll(s.logFile)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ACL:           types.ObjectCannedACLPrivate,
	})
	if err != nil {
		// Keep appending where we were.
		_, _ = s.logFile.Seek(0, io.SeekEnd)
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	return s.clean()
}

// Close and remove the temporary file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(s.filePath)
}
