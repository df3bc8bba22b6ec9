package repository_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smonzon/registration-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginator_EncodeDecode(t *testing.T) {
	paginator := repository.Paginator{
		LastID:        uuid.New(),
		LastCreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	token := paginator.Encode()
	require.NotEmpty(t, token)

	decoded, err := repository.DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, paginator.LastID, decoded.LastID)
	assert.True(t, paginator.LastCreatedAt.Equal(decoded.LastCreatedAt))
}

func TestDecodePageToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"NotBase64", "not-base64!!!"},
		{"MissingParts", base64.StdEncoding.EncodeToString([]byte("only-one-part"))},
		{"BadTimestamp", base64.StdEncoding.EncodeToString([]byte("not-a-time," + uuid.NewString()))},
		{"BadID", base64.StdEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano) + ",not-a-uuid"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repository.DecodePageToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestQuery_ApplyPagination(t *testing.T) {
	t.Run("default limit when zero", func(t *testing.T) {
		query := repository.NewQuery()
		require.NoError(t, query.ApplyPagination(0, ""))
		assert.Equal(t, repository.DefaultPaginationLimit, query.Limit)
		assert.Nil(t, query.Paginator)
	})

	t.Run("limit is capped", func(t *testing.T) {
		query := repository.NewQuery()
		require.NoError(t, query.ApplyPagination(1000, ""))
		assert.Equal(t, 100, query.Limit)
	})

	t.Run("valid token sets paginator", func(t *testing.T) {
		token := repository.Paginator{LastID: uuid.New(), LastCreatedAt: time.Now()}.Encode()
		query := repository.NewQuery()
		require.NoError(t, query.ApplyPagination(20, token))
		assert.Equal(t, 20, query.Limit)
		require.NotNil(t, query.Paginator)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		query := repository.NewQuery()
		assert.Error(t, query.ApplyPagination(20, "garbage"))
	})
}
