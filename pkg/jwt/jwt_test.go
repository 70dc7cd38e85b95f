package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTripsRoles(t *testing.T) {
	token, err := Generate("secreto", 42, []string{"resp_adm_contable", "resp_ti"}, "roi-admin-api", 5)
	require.NoError(t, err)

	userID, roles, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, []string{"resp_adm_contable", "resp_ti"}, roles)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secreto", 1, nil, "roi-admin-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secreto", 1, []string{"admin"}, "roi-admin-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", 1, nil, "x", 5)
	assert.Error(t, err)
}
