package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/config"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/access"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) (*Session, error)
	ResetPassword(ctx context.Context, actor *domain.Claims, targetUserID string) (string, error)
}

// Session é o token emitido junto com o perfil do usuário
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type Service struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewService(userRepo repository.UserRepository, validator *validation.Validator, cfg *config.Config) *Service {
	return &Service{
		userRepo:  userRepo,
		validator: validator,
		secretKey: cfg.Auth.SecretKey,
		tokenTTL:  cfg.Auth.TokenTTL,
		now:       time.Now,
	}
}

// HashPassword gera o hash bcrypt usado na tabela de perfis
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// NormalizeEmail remove espaços e coloca o e-mail em minúsculas
func NormalizeEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao consultar usuário no banco de dados")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// e-mail inexistente e senha errada respondem igual
	if user == nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Email ou senha incorretos")
	}

	return s.newSession(user)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar perfil")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao buscar perfil")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// ChangePassword troca a senha do próprio usuário, limpa a obrigação de troca
// e emite um token novo refletindo isso
func (s *Service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) (*Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrInvalidRequest, userID, "")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar usuário")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao buscar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
		return nil, NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, userID, "")
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrInternalServer, userID, "Erro ao gerar hash da senha")
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed, false); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar senha")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar senha")
	}

	user.PasswordHash = hashed
	user.MustChangePassword = false

	log.ForContext(ctx).WithField("user_id", userID).Info("Senha alterada")

	return s.newSession(user)
}

// ResetPassword gera uma senha provisória. Gerentes redefinem a senha dos
// vendedores da própria filial; o diretor redefine a de qualquer usuário.
func (s *Service) ResetPassword(ctx context.Context, actor *domain.Claims, targetUserID string) (string, error) {
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar usuário alvo")
		return "", NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao buscar usuário")
	}
	if target == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, targetUserID, "")
	}

	if !canResetPassword(actor, target) {
		return "", NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, targetUserID, "")
	}

	password, err := utils.GenerateTemporaryPassword()
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrInternalServer, targetUserID, "Erro ao gerar senha provisória")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrInternalServer, targetUserID, "Erro ao gerar hash da senha")
	}

	if err := s.userRepo.UpdatePassword(ctx, targetUserID, hashed, true); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar senha provisória")
		return "", NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao gravar senha provisória")
	}

	log.ForContext(ctx).WithField("target_user_id", targetUserID).Info("Senha provisória gerada")

	return password, nil
}

func canResetPassword(actor *domain.Claims, target *domain.User) bool {
	if actor == nil || actor.UserID == target.ID {
		return false
	}

	if target.Role == domain.RoleSeller {
		return access.CanManage(actor, target) == nil
	}

	return actor.IsDirector()
}

func (s *Service) newSession(user *domain.User) (*Session, error) {
	token, err := GenerateToken(user, s.secretKey, s.now().Add(s.tokenTTL))
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrInternalServer, user.ID, "Erro ao gerar token de autenticação")
	}

	user.PasswordHash = ""
	return &Session{Token: token, User: user}, nil
}

// GenerateToken assina um JWT HS256 com os dados do usuário
func GenerateToken(user *domain.User, secretKey string, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		UserID:             user.ID,
		UserName:           user.Name,
		UserEmail:          user.Email,
		Role:               user.Role,
		BranchID:           user.BranchID,
		MustChangePassword: user.MustChangePassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
