package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/constants"
	userModel "iqro_backend/internals/features/users/user/model"
)

func testUser() userModel.UserModel {
	org := uuid.New()
	return userModel.UserModel{
		ID:         uuid.New(),
		Name:       "Ahmad",
		Email:      "ahmad@iqro.test",
		Role:       constants.RoleSiswa,
		OrganizeID: &org,
	}
}

func TestBuildAccessClaims(t *testing.T) {
	u := testUser()
	now := time.Unix(1_700_000_000, 0).UTC()

	claims := BuildAccessClaims(u, now)
	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, u.ID.String(), claims["id"])
	assert.Equal(t, "siswa", claims["role"])
	assert.Equal(t, "Ahmad", claims["name"])
	assert.Equal(t, u.OrganizeID.String(), claims["organize_id"])
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims["exp"])

	u.OrganizeID = nil
	_, has := BuildAccessClaims(u, now)["organize_id"]
	assert.False(t, has)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := "refresh-secret"
	id := uuid.New()

	tok, err := SignClaims(BuildRefreshClaims(id, time.Now().UTC()), secret)
	require.NoError(t, err)

	got, err := ParseRefreshToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseRefreshToken(tok, "other-secret")
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsAccessAndExpired(t *testing.T) {
	secret := "s"
	access, err := SignClaims(BuildAccessClaims(testUser(), time.Now().UTC()), secret)
	require.NoError(t, err)
	_, err = ParseRefreshToken(access, secret)
	assert.Error(t, err)

	expired, err := SignClaims(BuildRefreshClaims(uuid.New(), time.Now().UTC().Add(-8*24*time.Hour)), secret)
	require.NoError(t, err)
	_, err = ParseRefreshToken(expired, secret)
	assert.Error(t, err)
}

func TestRefreshTokensAreUniquePerIssue(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()
	a, err := SignClaims(BuildRefreshClaims(id, now), "s")
	require.NoError(t, err)
	b, err := SignClaims(BuildRefreshClaims(id, now), "s")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, ComputeRefreshHash(a, "s"), ComputeRefreshHash(b, "s"))
}

func TestComputeRefreshHash(t *testing.T) {
	h1 := ComputeRefreshHash("token", "secret")
	h2 := ComputeRefreshHash("token", "secret")
	h3 := ComputeRefreshHash("token", "secret2")

	assert.Len(t, h1, 32)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestResolveBlacklistExpiry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	tok, err := SignClaims(jwt.MapClaims{"exp": now.Add(2 * time.Hour).Unix()}, "s")
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour+time.Minute), ResolveBlacklistExpiry(tok, now))

	old, err := SignClaims(jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}, "s")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), ResolveBlacklistExpiry(old, now))

	assert.Equal(t, now.Add(24*time.Hour), ResolveBlacklistExpiry("garbage", now))
	assert.Equal(t, now.Add(24*time.Hour), ResolveBlacklistExpiry("", now))
}

func TestIssueTokenPairNeedsSecrets(t *testing.T) {
	oldA, oldR := configs.JWTSecret, configs.JWTRefreshSecret
	t.Cleanup(func() { configs.JWTSecret, configs.JWTRefreshSecret = oldA, oldR })
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	configs.JWTSecret, configs.JWTRefreshSecret = "", ""
	_, err := issueTokenPair(testUser(), time.Now().UTC())
	assert.Error(t, err)

	configs.JWTSecret, configs.JWTRefreshSecret = "a", "r"
	pair, err := issueTokenPair(testUser(), time.Now().UTC())
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.Equal(t, ComputeRefreshHash(pair.Refresh, "r"), pair.RefreshHash)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(hash, "rahasia123"))
	assert.Error(t, CheckPasswordHash(hash, "salah"))
}
