package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/requestdata"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*types.User, string, error)
	LoginUser(ctx context.Context, username, password string) (*types.User, string, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*types.User, string, error) {
	input.Username = normalizeInputString(input.Username)
	input.Name = normalizeInputString(input.Name)

	if input.Username == "" {
		return nil, "", apperrors.New(apperrors.ErrInvalidArgument, "Username is required")
	}
	if input.Password == "" {
		return nil, "", apperrors.New(apperrors.ErrInvalidArgument, "Password is required")
	}
	if input.Name == "" {
		return nil, "", apperrors.New(apperrors.ErrInvalidArgument, "Name is required")
	}
	if input.Role != types.RoleCustomer && input.Role != types.RoleFamily {
		return nil, "", apperrors.New(apperrors.ErrInvalidArgument, "Role must be customer or family")
	}

	// Pre-check so duplicates come back as a clean validation error instead of
	// a driver-level unique constraint failure.
	exists, exErr := as.userRepo.UsernameExists(ctx, nil, input.Username)
	if exErr != nil {
		return nil, "", fmt.Errorf("Failed to check username: %w", exErr)
	}
	if exists {
		return nil, "", apperrors.New(apperrors.ErrConflict, "Username already exists")
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, "", fmt.Errorf("Failed to hash password: %w", hErr)
	}

	user := &types.User{
		Username: input.Username,
		Password: string(hashed),
		Role:     input.Role,
		Name:     input.Name,
	}
	if _, cErr := as.userRepo.Create(ctx, nil, []*types.User{user}); cErr != nil {
		return nil, "", fmt.Errorf("Failed to create user: %w", cErr)
	}

	token, tErr := as.generateAccessToken(user)
	if tErr != nil {
		return nil, "", fmt.Errorf("Failed to generate access token: %w", tErr)
	}
	return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (*types.User, string, error) {
	username = normalizeInputString(username)

	user, uErr := as.userRepo.GetByUsername(ctx, nil, username)
	if uErr != nil {
		return nil, "", fmt.Errorf("Failed to fetch user by username: %w", uErr)
	}
	if user == nil {
		return nil, "", apperrors.New(apperrors.ErrUnauthorized, "Invalid username or password")
	}
	if cErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cErr != nil {
		return nil, "", apperrors.New(apperrors.ErrUnauthorized, "Invalid username or password")
	}

	token, tErr := as.generateAccessToken(user)
	if tErr != nil {
		return nil, "", fmt.Errorf("Failed to generate access token: %w", tErr)
	}
	return user, token, nil
}

func (as *authService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	user, err := as.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "User not found")
	}
	return user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apperrors.New(apperrors.ErrUnauthorized, "Invalid or expired session")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apperrors.New(apperrors.ErrUnauthorized, "Invalid or expired session")
	}
	userID, pErr := strconv.ParseInt(claims.Subject, 10, 64)
	if pErr != nil {
		return ctx, apperrors.New(apperrors.ErrUnauthorized, "Invalid session subject")
	}

	// The role claim is convenient but the row is authoritative: a deleted
	// user's token must stop working.
	user, uErr := as.userRepo.GetByID(ctx, nil, userID)
	if uErr != nil {
		return ctx, fmt.Errorf("Failed to fetch user for session: %w", uErr)
	}
	if user == nil {
		return ctx, apperrors.New(apperrors.ErrUnauthorized, "Unknown session user")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		Role:        user.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
