package pagination_test

import (
	"testing"
	"time"

	"github.com/docpoints/docpoints_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2025, 6, 12, 10, 30, 0, 123456789, time.UTC)
	id := "0d9c4af0-2f5c-4a3d-9d3b-0f1a2b3c4d5e"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotCreatedAt, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("only-one-field")
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeTokenBadTimestamp(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("not-a-time", "some-id")
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	fields := []string{"2025-06-12T10:30:00Z", "entry-42", "upload_reward"}

	token := pagination.EncodeMultiFieldToken(fields...)
	got, err := pagination.DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}
