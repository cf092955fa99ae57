package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inspection-back/internal/auth"
	"inspection-back/internal/errs"
	"inspection-back/internal/models"
	"inspection-back/internal/repository"
	"inspection-back/internal/schema"
)

// MinPasswordLength is the shortest password accepted for an account.
const MinPasswordLength = 5

// UserService manages accounts and access tokens.
type UserService struct {
	users  *repository.UserRepo
	tokens *auth.TokenManager
	log    *zap.Logger
}

func NewUserService(users *repository.UserRepo, tokens *auth.TokenManager, log *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: log}
}

// NormalizeEmail lower-cases the domain part of email. The local part is
// kept as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// Register validates a full account payload and creates an active user.
func (s *UserService) Register(ctx context.Context, raw []byte) (*models.User, error) {
	p, err := schema.UserSchema.Parse(raw, false)
	if err != nil {
		return nil, err
	}
	u := &models.User{}
	schema.UserSchema.Apply(p, u)
	return s.create(ctx, u.Email, u.Password, u.Name, false)
}

// CreateUser creates an active regular user.
func (s *UserService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.create(ctx, email, password, name, false)
}

// CreateSuperuser creates an active user with staff and superuser rights.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.create(ctx, email, password, "", true)
}

func (s *UserService) create(ctx context.Context, email, password, name string, super bool) (*models.User, error) {
	email = NormalizeEmail(email)
	verr := &schema.ValidationError{}
	checkEmail(verr, email)
	checkPassword(verr, password)
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:       email,
		Password:    string(hash),
		Name:        name,
		IsActive:    true,
		IsStaff:     super,
		IsSuperuser: super,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, schema.Invalid("email", "user with this email already exists.")
		}
		return nil, err
	}
	s.log.Info("user created", zap.Uint("user_id", u.ID), zap.Bool("superuser", super))
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", errs.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", errs.ErrInvalidCredentials
	}
	return s.tokens.GenerateToken(u.ID)
}

// Authenticate resolves a bearer token to an active user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, errs.ErrUnauthorized
	}
	return u, nil
}

// UpdateMe applies an account payload to u. A supplied password is hashed.
func (s *UserService) UpdateMe(ctx context.Context, u *models.User, raw []byte, partial bool) (*models.User, error) {
	p, err := schema.UserSchema.Parse(raw, partial)
	if err != nil {
		return nil, err
	}

	verr := &schema.ValidationError{}
	if email, ok := p.Values["email"]; ok {
		p.Values["email"] = NormalizeEmail(email)
		checkEmail(verr, p.Values["email"])
	}
	password, setPassword := p.Values["password"]
	if setPassword {
		checkPassword(verr, password)
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hash := u.Password
	schema.UserSchema.Apply(p, u)
	u.Password = hash
	if setPassword {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(b)
	}
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, schema.Invalid("email", "user with this email already exists.")
		}
		return nil, err
	}
	return u, nil
}

func checkEmail(verr *schema.ValidationError, email string) {
	if email == "" {
		verr.Add("email", "This field may not be blank.")
		return
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.Add("email", "Enter a valid email address.")
	}
}

func checkPassword(verr *schema.ValidationError, password string) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		verr.Add("password", "Ensure this field has at least 5 characters.")
	}
}
