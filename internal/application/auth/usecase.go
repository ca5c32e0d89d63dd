package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	uowFactory repository.UnitOfWorkFactory
	jwtCfg     JWTConfig
	cost       int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(uowFactory repository.UnitOfWorkFactory, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{uowFactory: uowFactory, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo del hash (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrAlreadyExists si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	repo := uow.Users()
	existing, err := repo.Find(ctx, entity.UserFilter{Username: in.Username})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("usuario '%s': %w", in.Username, domain.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repo.Add(ctx, user); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Message: "usuario registrado", UserID: user.ID}, nil
}

// Login verifica username/password y genera el JWT.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	uow, err := uc.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	users, err := uow.Users().Find(ctx, entity.UserFilter{Username: in.Username})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUnauthorized
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
