package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPasetoKey = []byte("0123456789abcdef0123456789abcdef")

func tokenServices(t *testing.T) map[string]TokenService {
	t.Helper()

	j, err := NewJWTService([]byte("unit-secret"))
	require.NoError(t, err)
	p, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)

	return map[string]TokenService{"jwt": j, "paseto": p}
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, svc := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			access, err := svc.CreateToken("user-123", "", 15*time.Minute)
			require.NoError(t, err)

			claims, err := svc.VerifyToken(access)
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.Subject)
			assert.False(t, claims.IsRefresh())
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt, 2*time.Second)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt, 2*time.Second)

			refresh, err := svc.CreateToken("user-123", TokenTypeRefresh, 7*24*time.Hour)
			require.NoError(t, err)

			claims, err = svc.VerifyToken(refresh)
			require.NoError(t, err)
			assert.True(t, claims.IsRefresh())
		})
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	for name, svc := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			tok, err := svc.CreateToken("u1", "", -1*time.Minute)
			require.NoError(t, err)

			_, err = svc.VerifyToken(tok)
			require.ErrorIs(t, err, ErrExpiredToken)
		})
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	for name, svc := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			for _, bad := range []string{"", "not.a.token", "v4.local.garbage"} {
				_, err := svc.VerifyToken(bad)
				require.ErrorIs(t, err, ErrInvalidToken, "input %q", bad)
			}
		})
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewJWTService([]byte("right-secret"))
	require.NoError(t, err)
	verifier, err := NewJWTService([]byte("wrong-secret"))
	require.NoError(t, err)

	tok, err := signer.CreateToken("u2", "", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("unit-secret"))
	require.NoError(t, err)

	claims := jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RequiresSubjectAndExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("unit-secret")
	svc, err := NewJWTService(secret)
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.VerifyToken(noSub)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u4",
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.VerifyToken(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_PayloadShape(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("unit-secret"))
	require.NoError(t, err)

	tok, err := svc.CreateToken("u5", TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	require.NoError(t, err)
	mc := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "u5", mc["sub"])
	assert.Equal(t, "refresh", mc["type"])
	assert.Contains(t, mc, "iat")
	assert.Contains(t, mc, "exp")

	access, err := svc.CreateToken("u5", "", time.Hour)
	require.NoError(t, err)
	parsed, _, err = jwt.NewParser().ParseUnverified(access, jwt.MapClaims{})
	require.NoError(t, err)
	assert.NotContains(t, parsed.Claims.(jwt.MapClaims), "type")
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(nil)
	require.Error(t, err)
}

func TestPasetoService_KeyLength(t *testing.T) {
	t.Parallel()

	_, err := NewPasetoService([]byte("short"))
	require.Error(t, err)
}

func TestPasetoService_WrongKey(t *testing.T) {
	t.Parallel()

	a, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	b, err := NewPasetoService([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)

	tok, err := a.CreateToken("u6", "", time.Hour)
	require.NoError(t, err)

	_, err = b.VerifyToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Verify(hash, "correct horse"))
	assert.False(t, h.Verify(hash, "wrong horse"))
	assert.False(t, h.Verify("not-a-hash", "correct horse"))
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	long := strings.Repeat("密", 30)
	hash, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(hash, long))

	// bcrypt alone would compare only the first 72 bytes.
	a := strings.Repeat("x", 72) + "a"
	hash, err = h.Hash(a)
	require.NoError(t, err)
	assert.True(t, h.Verify(hash, a))
	assert.False(t, h.Verify(hash, strings.Repeat("x", 72)+"b"))
}
