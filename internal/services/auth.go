package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
	"github.com/frqgit/year-7-math/internal/requestdata"
)

const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// AuthResult is what signup and login hand back: the authenticated identity
// plus a fresh token pair.
type AuthResult struct {
	User         *domain.User        `json:"user"`
	Profile      *domain.UserProfile `json:"profile"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	ExpiresIn    int64               `json:"expires_in"`
}

// SessionBootstrap bundles everything the client needs to render after
// authenticating.
type SessionBootstrap struct {
	User         *domain.User              `json:"user"`
	Profile      *domain.UserProfile       `json:"profile"`
	Achievements []*domain.UserAchievement `json:"achievements"`
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context) error
	// SetContextFromToken validates the bearer token and attaches the
	// caller's identity to the context for downstream handlers.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	Bootstrap(ctx context.Context, userID uuid.UUID) (*SessionBootstrap, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	users        repos.UserRepo
	profiles     repos.ProfileRepo
	unlocks      repos.UserAchievementRepo
	tokens       repos.UserTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	log          *logger.Logger
}

func NewAuthService(
	db *gorm.DB,
	users repos.UserRepo,
	profiles repos.ProfileRepo,
	unlocks repos.UserAchievementRepo,
	tokens repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	baseLog *logger.Logger,
) AuthService {
	return &authService{
		db:           db,
		users:        users,
		profiles:     profiles,
		unlocks:      unlocks,
		tokens:       tokens,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		log:          baseLog.With("service", "auth"),
	}
}

// Register creates the user and an empty profile in one transaction and logs
// the new user straight in.
func (as *authService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = normalizeUsername(username)
	if !usernamePattern.MatchString(username) || len(password) < 6 {
		return nil, apperrors.ErrValidation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
	}
	profile := &domain.UserProfile{
		ID:     uuid.New(),
		UserID: user.ID,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.users.UsernameExists(ctx, tx, username)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrConflict
		}
		if err := as.users.Create(ctx, tx, user); err != nil {
			return err
		}
		return as.profiles.Create(ctx, tx, profile)
	})
	if err != nil {
		// A racing signup can slip past the existence check and hit the
		// unique index instead.
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	as.log.Info("user registered", "user_id", user.ID, "username", username)
	return as.issueTokens(ctx, user, profile)
}

func (as *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrValidation
	}

	user, err := as.users.GetByUsername(ctx, nil, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	profile, err := as.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, user, profile)
}

// Refresh rotates the token pair: the presented refresh token is consumed
// and a new pair is issued.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrValidation
	}
	stored, err := as.tokens.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = as.tokens.Delete(ctx, nil, stored.ID)
		return nil, apperrors.ErrUnauthorized
	}

	user, err := as.users.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := as.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	if err := as.tokens.Delete(ctx, nil, stored.ID); err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, user, profile)
}

func (as *authService) Logout(ctx context.Context) error {
	rd, ok := requestdata.GetRequestData(ctx)
	if !ok || rd.TokenString == "" {
		return apperrors.ErrUnauthorized
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := as.tokens.GetByAccessToken(ctx, tx, rd.TokenString)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil
			}
			return err
		}
		return as.tokens.Delete(ctx, tx, stored.ID)
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apperrors.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apperrors.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apperrors.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperrors.ErrUnauthorized
	}

	// The token row must still exist: logout deletes it, which revokes the
	// access token server-side before its expiry.
	stored, err := as.tokens.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return ctx, apperrors.ErrUnauthorized
		}
		return ctx, err
	}

	rd := &requestdata.RequestData{
		UserID:       userID,
		TokenString:  tokenString,
		RefreshToken: stored.RefreshToken,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// Profile returns the caller's stats profile.
func (as *authService) Profile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return as.profiles.GetByUserID(ctx, nil, userID)
}

// Bootstrap loads user, profile and unlocked achievements concurrently.
func (as *authService) Bootstrap(ctx context.Context, userID uuid.UUID) (*SessionBootstrap, error) {
	var (
		user         *domain.User
		profile      *domain.UserProfile
		achievements []*domain.UserAchievement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = as.users.GetByID(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = as.profiles.GetByUserID(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		achievements, err = as.unlocks.ListByUser(gctx, nil, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &SessionBootstrap{User: user, Profile: profile, Achievements: achievements}, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(ctx context.Context, user *domain.User, profile *domain.UserProfile) (*AuthResult, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken := uuid.NewString()

	record := &domain.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokens.DeleteExpired(ctx, tx, time.Now()); err != nil {
			return err
		}
		return as.tokens.Create(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) generateAccessToken(user *domain.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
