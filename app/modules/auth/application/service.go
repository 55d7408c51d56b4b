package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability/attr"
)

const serviceName = "AuthService"

// DefaultTokenTTL applies when Config.DefaultTTL is unset.
const DefaultTokenTTL = 24 * time.Hour

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
}

// service implements the Service interface.
type service struct {
	repo        authdb.Repository
	jwtProvider authjwt.Provider
	clock       clock.Clock
	config      Config
	logger      *slog.Logger
	metrics     observability.OperationRecorder
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	repo authdb.Repository,
	jwtProvider authjwt.Provider,
	c clock.Clock,
	config Config,
	logger *slog.Logger,
	metrics observability.OperationRecorder,
	tracer trace.Tracer,
) Service {
	if c == nil {
		c = clock.Real{}
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	return &service{
		repo:        repo,
		jwtProvider: jwtProvider,
		clock:       c,
		config:      config,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
	}
}

func (s *service) telemetry() observability.Telemetry {
	return observability.Telemetry{Service: serviceName, Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

func (s *service) Login(ctx context.Context, ip netip.Addr, username, password string) (*LoginResponse, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "Login", username, func(ctx context.Context) (*LoginResponse, error) {
		user, err := s.repo.GetUserByUsername(ctx, nil, username)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return nil, apierror.Wrap(apierror.ErrUnauthorized, "Invalid credentials", ErrInvalidCredentials)
			}
			return nil, apierror.DataAccess("Couldn't get rows from database", err)
		}

		now := s.clock.Now()
		attempts, err := s.repo.RecentAttempts(ctx, nil, ip, user.ID, now)
		if err != nil {
			if errors.Is(err, authdb.ErrDecoding) {
				return nil, apierror.Wrap(apierror.ErrDecoding, "Couldn't decode login attempts", err)
			}
			return nil, apierror.DataAccess("Couldn't get rows from database", err)
		}

		if authdomain.IsOnCooldown(attempts, ip, user.ID, now) {
			until, _ := authdomain.CooldownUntil(attempts, ip, user.ID)
			retry := until.Unix() - now.Unix()
			s.logger.WarnContext(ctx, "Login refused during cooldown",
				attr.ExtractCorrelationID(ctx),
				attr.String("ip", ip.String()),
				attr.Int32("user_id", user.ID),
				attr.Any("retry_seconds", retry),
			)
			return nil, apierror.Wrap(apierror.ErrTooManyRequests, fmt.Sprintf("Too many login attempts, retry in %d seconds", retry), ErrOnCooldown)
		}

		s.recordAttempt(ctx, ip, user.ID)

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, apierror.Wrap(apierror.ErrUnauthorized, "Invalid credentials", ErrInvalidCredentials)
		}

		claims := &authdomain.Claims{UserID: user.ID, Admin: user.IsAdmin}
		token, err := s.jwtProvider.GenerateToken(claims, s.config.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
		}

		s.logger.InfoContext(ctx, "User logged in",
			attr.ExtractCorrelationID(ctx),
			attr.Int32("user_id", user.ID),
		)
		return &LoginResponse{Token: token, ExpiresAt: now.Add(s.config.DefaultTTL)}, nil
	})
}

// recordAttempt appends to the attempt log. A failure is logged and counted
// but never fails the login.
func (s *service) recordAttempt(ctx context.Context, ip netip.Addr, userID int32) {
	if err := s.repo.RecordAttempt(ctx, nil, ip, userID); err != nil {
		s.metrics.RecordOperationFailure(ctx, "RecordAttempt", serviceName)
		s.logger.ErrorContext(ctx, "Failed to record login attempt",
			attr.ExtractCorrelationID(ctx),
			attr.String("ip", ip.String()),
			attr.Int32("user_id", userID),
			attr.Error(err),
		)
	}
}

func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return claims, nil
}
