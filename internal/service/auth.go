package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRegistrationClosed = errors.New("self registration is disabled")
	ErrInvalidToken       = errors.New("invalid token")
)

// RegisterInput describes a new account. Role defaults to student.
type RegisterInput struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Name      string     `json:"name"`
	GroupName string     `json:"group_name"`
	Role      model.Role `json:"-"`
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID string
	Role   model.Role
}

type AuthService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	emailService      *EmailService
	jwtSecret         string
	jwtExpiry         time.Duration
	registrationOpen  bool
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	emailService *EmailService,
	jwtSecret string,
	jwtExpiry time.Duration,
	registrationOpen bool,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		emailService:      emailService,
		jwtSecret:         jwtSecret,
		jwtExpiry:         jwtExpiry,
		registrationOpen:  registrationOpen,
	}
}

// Register creates a student account through the public endpoint.
func (s *AuthService) Register(input RegisterInput) (*model.User, *model.Profile, error) {
	if !s.registrationOpen {
		return nil, nil, ErrRegistrationClosed
	}
	input.Role = model.RoleStudent
	return s.CreateAccount(input)
}

// CreateAccount creates a user and profile with any role. The admin CLI uses it for staff.
func (s *AuthService) CreateAccount(input RegisterInput) (*model.User, *model.Profile, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	group := strings.TrimSpace(input.GroupName)
	if input.Role == "" {
		input.Role = model.RoleStudent
	}

	for _, err := range []error{
		validation.ValidateEmail(email),
		validation.ValidatePassword(input.Password),
		validation.ValidateName(name),
		validation.ValidateRole(input.Role),
		validation.ValidateGroup(input.Role, group),
	} {
		if err != nil {
			return nil, nil, err
		}
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hash,
		CreatedAt:    now,
	}
	err = s.userRepository.Create(user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      name,
		Role:      input.Role,
		GroupName: group,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.profileRepository.Create(profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	err = s.emailService.SendWelcomeEmail(user.Email, name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("account created", "user_id", user.ID, "role", profile.Role, "group", profile.GroupName)
	return user, profile, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateJWT issues an access token and returns it with its expiry.
func (s *AuthService) GenerateJWT(user *model.User, profile *model.Profile) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(profile.Role),
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Role: model.Role(role)}, nil
}
