package authhandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthHandlers_HandleLogin(t *testing.T) {
	expires := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		remoteAddr   string
		headers      map[string]string
		body         string
		setupService func(*FakeService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:       "success",
			remoteAddr: "203.0.113.7:51234",
			body:       `{"username":"mario","password":"hunter22"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
					assert.Equal(t, netip.MustParseAddr("203.0.113.7"), ip)
					assert.Equal(t, "mario", username)
					assert.Equal(t, "hunter22", password)
					return &authservice.LoginResponse{Token: "signed", ExpiresAt: expires}, nil
				}
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"token":"signed","expires_at":"2024-05-02T12:00:00Z"}`,
		},
		{
			name:       "ipv4 mapped address is unmapped",
			remoteAddr: "[::ffff:203.0.113.7]:51234",
			body:       `{"username":"mario","password":"hunter22"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
					assert.True(t, ip.Is4())
					return &authservice.LoginResponse{Token: "signed"}, nil
				}
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "forwarding headers do not change the client address",
			remoteAddr: "203.0.113.9:40000",
			headers: map[string]string{
				"X-Forwarded-For": "10.0.0.1",
				"X-Real-IP":       "10.0.0.2",
			},
			body: `{"username":"mario","password":"hunter22"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
					assert.Equal(t, netip.MustParseAddr("203.0.113.9"), ip)
					return &authservice.LoginResponse{Token: "signed"}, nil
				}
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad credentials",
			remoteAddr: "203.0.113.7:51234",
			body:       `{"username":"mario","password":"nope"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
					return nil, apierror.Wrap(apierror.ErrUnauthorized, "Invalid credentials", authservice.ErrInvalidCredentials)
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Invalid credentials","cause":"invalid username or password"}`,
		},
		{
			name:       "cooldown",
			remoteAddr: "203.0.113.7:51234",
			body:       `{"username":"mario","password":"hunter22"}`,
			setupService: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
					return nil, apierror.Wrap(apierror.ErrTooManyRequests, "Too many login attempts, retry in 200 seconds", authservice.ErrOnCooldown)
				}
			},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"message":"Too many login attempts, retry in 200 seconds","cause":"too many login attempts"}`,
		},
		{
			name:       "malformed body",
			remoteAddr: "203.0.113.7:51234",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			remoteAddr: "203.0.113.7:51234",
			body:       `{"username":"mario"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"username and password are required","cause":""}`,
		},
		{
			name:       "unparseable remote address",
			remoteAddr: "pipe",
			body:       `{"username":"mario","password":"hunter22"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setupService != nil {
				tt.setupService(svc)
			}
			h := NewAuthHandlers(svc, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAdminHandlers_HandleInvalidateCaches(t *testing.T) {
	var regions, levels int
	h := NewAdminHandlers(discardLogger(),
		CacheInvalidator{Name: "regions", Invalidate: func() { regions++ }},
		CacheInvalidator{Name: "standard_levels", Invalidate: func() { levels++ }},
	)

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", nil)
	req = req.WithContext(context.WithValue(req.Context(), claimsKey{}, &authdomain.Claims{UserID: 3, Admin: true}))
	rec := httptest.NewRecorder()
	h.HandleInvalidateCaches(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"invalidated":["regions","standard_levels"]}`, rec.Body.String())
	assert.Equal(t, 1, regions)
	assert.Equal(t, 1, levels)
}
