package authjwt

import (
	"errors"
	"os"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-at-least-32-chars-long!!"
	}
	p := NewProvider(secret, nil)

	claims := &authdomain.Claims{
		UserID: 42,
		Admin:  true,
	}

	tests := []struct {
		name        string
		setupClaims *authdomain.Claims
		ttl         time.Duration
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name:        "success",
			setupClaims: claims,
			ttl:         1 * time.Hour,
			provider:    p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.UserID != claims.UserID {
					t.Errorf("expected userID %d, got %d", claims.UserID, validated.UserID)
				}
				if !validated.Admin {
					t.Errorf("expected admin claim to survive the round trip")
				}
				if validated.ExpiresAt.Sub(validated.IssuedAt) != time.Hour {
					t.Errorf("expected a one hour lifetime, got %v", validated.ExpiresAt.Sub(validated.IssuedAt))
				}
			},
		},
		{
			name:        "non admin",
			setupClaims: &authdomain.Claims{UserID: 7},
			ttl:         1 * time.Hour,
			provider:    p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.Admin {
					t.Errorf("expected admin claim to be false")
				}
			},
		},
		{
			name:        "expired token",
			setupClaims: claims,
			ttl:         -1 * time.Hour,
			provider:    p,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "invalid signature",
			setupClaims: claims,
			ttl:         1 * time.Hour,
			provider:    NewProvider("wrong-secret", nil),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			setupClaims: nil,
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := "not.a.jwt"
			if tt.setupClaims != nil {
				var err error
				token, err = p.GenerateToken(tt.setupClaims, tt.ttl)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
			}

			validateTarget := p
			if tt.provider != nil {
				validateTarget = tt.provider
			}

			validatedClaims, err := validateTarget.ValidateToken(token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.verify != nil {
				tt.verify(t, validatedClaims)
			}
		})
	}
}
