package pagination_test

import (
	"testing"
	"time"

	"github.com/edupulse/institute_portal_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	id := "8f3c1a2e-0df1-4f5a-931c-6e5a1f1f9d3b"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	// valid base64 but missing the separator
	_, _, err = pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
