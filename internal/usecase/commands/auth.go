package commands

import (
	"context"

	"shophub/internal/domain/account"
	"shophub/internal/infra"
	"shophub/internal/pkg/errs"
	"shophub/internal/pkg/jwt"
	"shophub/internal/pkg/password"
)

var (
	ErrEmailTaken         = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("invalid email or password")
)

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
}

// TokenValidator is what the auth middleware consumes; the JWT service
// satisfies it directly.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthCommands interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type authUseCaseImpl struct {
	accountRepo AccountRepository
	jwtService  *jwt.Service
}

func NewAuthUseCase(accountRepo AccountRepository, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{
		accountRepo: accountRepo,
		jwtService:  jwtService,
	}
}

func (u *authUseCaseImpl) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := account.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	acc := account.NewAccount(email, hash)
	accountID, err := u.accountRepo.Create(ctx, acc)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Wrap(err, "failed to create account")
	}

	token, err := u.jwtService.GenerateToken(accountID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &AuthResult{Token: token}, nil
}

func (u *authUseCaseImpl) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	snapshot, err := u.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a bad password so callers cannot probe for
			// registered addresses.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "failed to find account")
	}

	if err := password.ComparePassword(snapshot.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(snapshot.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &AuthResult{Token: token}, nil
}
