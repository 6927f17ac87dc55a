package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/repository"
	"annonsplats/internal/service/email"
	"annonsplats/internal/service/notification"
)

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailExists              = errors.New("email already registered")
	ErrUsernameTaken            = domain.ErrUsernameTaken
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrUserNotFound             = errors.New("user not found")
	ErrTokenExpired             = errors.New("password reset token has expired")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrVerificationTokenExpired = errors.New("email verification token has expired")
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput, meta SessionMeta) (*domain.User, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string, meta SessionMeta) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerificationEmail(ctx context.Context, email string) error
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type service struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	emailService email.Service
	notifService notification.Service
	cfg          *config.Config
	logger       *zap.Logger
}

func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	emailService email.Service,
	notifService notification.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		emailService: emailService,
		notifService: notifService,
		cfg:          cfg,
		logger:       logger.Named("auth"),
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	var username *string
	if name := strings.TrimSpace(input.Username); name != "" {
		taken, err := s.userRepo.ExistsByUsername(ctx, name, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		username = &name
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:              uuid.New(),
		Email:           emailAddr,
		PasswordHash:    string(hashedPassword),
		Username:        username,
		EmailName:       emailLocalPart(emailAddr),
		IsEmailVerified: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput, meta SessionMeta) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	tokens, err := s.generateTokenPair(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.notifService.Refresh(ctx, user.ID); err != nil {
		s.logger.Warn("failed to refresh badge on sign-in",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string, meta SessionMeta) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, user, meta)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return err
	}
	s.notifService.Forget(session.UserID)
	return nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(ctx context.Context, user *domain.User, meta SessionMeta) (*domain.TokenPair, error) {
	now := time.Now()
	accessClaims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshTokenRaw),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	resetToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, resetToken, time.Now().Add(time.Hour)); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendPasswordResetEmail(context.Background(), user.Email, user.DisplayName(), resetToken); err != nil {
			s.logger.Error("failed to send password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}()

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if user.PasswordResetExpiresAt != nil && time.Now().After(*user.PasswordResetExpiresAt) {
		return ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	if err := s.userRepo.ClearPasswordResetToken(ctx, user.ID); err != nil {
		return err
	}

	return s.sessionRepo.RevokeAllForUser(ctx, user.ID)
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetUserByEmailVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if user.EmailVerificationSentAt != nil && time.Now().After(user.EmailVerificationSentAt.Add(24*time.Hour)) {
		return ErrVerificationTokenExpired
	}

	return s.userRepo.VerifyEmail(ctx, user.ID)
}

func (s *service) ResendVerificationEmail(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		return err
	}
	if user == nil || user.IsEmailVerified {
		return nil
	}

	return s.issueVerification(ctx, user)
}

func (s *service) issueVerification(ctx context.Context, user *domain.User) error {
	verificationToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetEmailVerificationToken(ctx, user.ID, verificationToken, time.Now()); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendEmailVerification(context.Background(), user.Email, user.DisplayName(), verificationToken); err != nil {
			s.logger.Error("failed to send verification email", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}()

	return nil
}

func randomToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func emailLocalPart(addr string) string {
	if i := strings.IndexByte(addr, '@'); i > 0 {
		return addr[:i]
	}
	return addr
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
