package service

import (
	"errors"
	"fmt"

	"agrichain/internal/model"
	"agrichain/internal/repository"
	"agrichain/pkg/jwt"
	"agrichain/pkg/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService is the session gateway: self-service registration and
// login against the users table, issuing JWTs that carry the identity
// the ledger operations require.
type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(userID, password string) (*LoginResponse, error)
	CurrentUser(userID string) (*model.User, error)
}

type RegisterRequest struct {
	UserID   string         `json:"user_id" validate:"required"`
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	UserType model.UserType `json:"user_type" validate:"required,oneof=farmer distributor retailer customer"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, errs[0].FailedField)
	}

	user := &model.User{
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		UserType: req.UserType,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	zap.L().Info("user registered",
		zap.String("user_id", user.UserID),
		zap.String("user_type", string(user.UserType)))
	return user, nil
}

func (s *authService) Login(userID, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		// Same answer for unknown user and wrong password.
		return nil, ErrInvalidLogin
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidLogin
	}

	token, err := jwt.GenerateToken(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.Identity(),
	}, nil
}

func (s *authService) CurrentUser(userID string) (*model.User, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
