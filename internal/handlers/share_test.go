package handlers

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintShareToken(t *testing.T, secret, cardID string, ttl time.Duration) string {
	t.Helper()
	claims := shareClaims{
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestCheckShareToken_Valid(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "s3cret", "card-1", time.Hour)
	assert.NoError(t, checkShareToken(tok, "card-1"))
}

func TestCheckShareToken_WrongCard(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "s3cret", "card-1", time.Hour)
	assert.Error(t, checkShareToken(tok, "card-2"))
}

func TestCheckShareToken_Expired(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "s3cret", "card-1", -time.Minute)
	assert.Error(t, checkShareToken(tok, "card-1"))
}

func TestCheckShareToken_WrongSecret(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "other", "card-1", time.Hour)
	assert.Error(t, checkShareToken(tok, "card-1"))
}

func TestCheckShareToken_Missing(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	assert.Error(t, checkShareToken("", "card-1"))
}

func TestShareLinkURL_TokenResolvesItsOwnPathID(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	cardID := "7b8e9d30-1f4a-4c2a-9d55-0a1b2c3d4e5f"
	tok := mintShareToken(t, "s3cret", cardID, time.Hour)

	link := shareLinkURL("http://localhost:3000/", cardID, tok)
	u, err := url.Parse(link)
	require.NoError(t, err)

	// Whatever ID the page reads from the path must be the ID the token
	// was minted for, or the public card-info fetch would be rejected.
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	require.NotEmpty(t, segs)
	pathID := segs[len(segs)-1]
	assert.Equal(t, cardID, pathID)
	assert.NoError(t, checkShareToken(u.Query().Get("token"), pathID))
}

func TestGetShareSecret_FallsBackToJWTSecret(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy")
	secret, err := getShareSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("legacy"), secret)
}
