package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"leaguerats/pkg/errs"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHeader struct {
	mock.Mock
}

func (m *mockHeader) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, *params.Key)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, *params.Key)
	out, _ := args.Get(0).(*v4.PresignedHTTPRequest)
	return out, args.Error(1)
}

// Test the resolution branches of the S3 resolver.
func TestS3ResolverURL(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		path      string
		publicURL string
		headErr   error
		presign   *v4.PresignedHTTPRequest
		want      string
		wantErr   error
	}{
		{
			name:      "public url",
			path:      "teams/T1.png",
			publicURL: "https://cdn.example.com/",
			want:      "https://cdn.example.com/teams/T1.png",
		},
		{
			name:    "presigned",
			path:    "/ranks/icons/gold.png",
			presign: &v4.PresignedHTTPRequest{URL: "https://bucket/ranks/icons/gold.png?sig=1"},
			want:    "https://bucket/ranks/icons/gold.png?sig=1",
		},
		{
			name:    "typed not found",
			path:    "items/1.png",
			headErr: &types.NotFound{},
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "api not found code",
			path:    "items/2.png",
			headErr: &smithy.GenericAPIError{Code: "NoSuchKey"},
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "transport failure",
			path:    "items/3.png",
			headErr: errors.New("connection reset"),
			wantErr: errs.ErrTransport,
		},
		{
			name:    "empty path",
			path:    "/",
			wantErr: errs.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := new(mockHeader)
			presigner := new(mockPresigner)

			key := tt.path
			for len(key) > 0 && key[0] == '/' {
				key = key[1:]
			}
			if key != "" {
				header.On("HeadObject", ctx, key).Return(&s3.HeadObjectOutput{}, tt.headErr)
			}
			if tt.presign != nil {
				presigner.On("PresignGetObject", ctx, key).Return(tt.presign, nil)
			}

			resolver := NewS3Resolver(&S3ResolverDeps{
				Client:     header,
				Presigner:  presigner,
				Bucket:     "assets",
				PublicURL:  tt.publicURL,
				PresignTTL: time.Minute,
			})

			got, err := resolver.URL(ctx, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			header.AssertExpectations(t)
			presigner.AssertExpectations(t)
		})
	}
}

func TestStaticResolver(t *testing.T) {
	got, err := StaticResolver{BaseURL: "https://cdn.example.com/"}.URL(context.Background(), "teams/G2.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/teams/G2.png", got)

	_, err = StaticResolver{}.URL(context.Background(), "teams/G2.png")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// Test the object key builders.
func TestPaths(t *testing.T) {
	assert.Equal(t, "champions/icons/Aatrox.png", ChampionIconPath("Aatrox"))
	assert.Equal(t, "ranks/icons/grandmaster.png", RankIconPath("GRANDMASTER"))
	assert.Equal(t, "regions/icons/euw.png", RegionIconPath("EUW"))
	assert.Equal(t, "teams/GENG.png", TeamLogoPath("GenG"))
	assert.Equal(t, "players/lee_sang hyeok.png", PlayerImagePath("Lee Sang Hyeok"))
	assert.Equal(t, "items/3031.png", ItemIconPath(3031))
	assert.Equal(t, "summoners/SummonerFlash.png", SummonerSpellIconPath("SummonerFlash"))
}
