package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
	body []byte
}

func (m *mockUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	args := m.Called(ctx, *params.Bucket, *params.Key)
	output, _ := args.Get(0).(*s3.PutObjectOutput)
	return output, args.Error(1)
}

func newSink(t *testing.T) *FileSink {
	t.Helper()

	sink, err := NewFileSink()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	return sink
}

func fileContent(t *testing.T, sink *FileSink) string {
	t.Helper()

	content, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	return string(content)
}

func TestUploadToS3Bucket(t *testing.T) {
	tests := []struct {
		name      string
		uploadErr error
		remaining string
	}{
		{name: "success", remaining: ""},
		{name: "failure", uploadErr: errors.New("denied"), remaining: "first\nsecond\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newSink(t)
			uploader := new(mockUploader)
			uploader.On("PutObject", mock.Anything, "logs", "api/1.log").
				Return(&s3.PutObjectOutput{}, tt.uploadErr).Once()

			_, err := sink.Write([]byte("first\n"))
			require.NoError(t, err)

			err = sink.UploadToS3Bucket(context.Background(), uploader, "logs", "api/1.log")
			_, _ = sink.Write([]byte("second\n"))

			if tt.uploadErr != nil {
				assert.ErrorIs(t, err, tt.uploadErr)
			} else {
				require.NoError(t, err)
				tt.remaining = "second\n"
			}

			assert.Equal(t, "first\n", string(uploader.body))
			assert.Equal(t, tt.remaining, fileContent(t, sink))
			uploader.AssertExpectations(t)
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter("warn", &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("region", "EUW").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"region":"EUW"`)

	buf.Reset()
	defaulted := NewWithWriter("nonsense", &buf)
	defaulted.Info().Msg("defaulted")
	assert.Contains(t, buf.String(), "defaulted")
}
