package service

import (
	"errors"
	"testing"

	"agrichain/internal/model"
)

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		UserID:   "FARM003",
		Name:     "Frank Farmer",
		Email:    "frank@example.com",
		Password: "12345678",
		UserType: model.TypeFarmer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	user, err := env.auth.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Password == "12345678" {
		t.Error("Password must be stored hashed")
	}

	resp, err := env.auth.Login("FARM003", "12345678")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a token")
	}
	if resp.User.UserID != "FARM003" || resp.User.UserType != model.TypeFarmer {
		t.Errorf("Unexpected identity: %+v", resp.User)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	if _, err := env.auth.Register(registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := env.auth.Login("FARM003", "wrong-password"); !errors.Is(err, ErrInvalidLogin) {
		t.Errorf("Wrong password: expected ErrInvalidLogin, got %v", err)
	}
	if _, err := env.auth.Login("NOBODY", "12345678"); !errors.Is(err, ErrInvalidLogin) {
		t.Errorf("Unknown user: expected ErrInvalidLogin, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	if _, err := env.auth.Register(registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Same user_id.
	dup := registerRequest()
	dup.Email = "other@example.com"
	if _, err := env.auth.Register(dup); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("Duplicate user_id: expected ErrDuplicateUser, got %v", err)
	}

	// Same email.
	dup = registerRequest()
	dup.UserID = "FARM004"
	if _, err := env.auth.Register(dup); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("Duplicate email: expected ErrDuplicateUser, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	req := registerRequest()
	req.UserType = "wizard"
	if _, err := env.auth.Register(req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Bad user_type: expected ErrInvalidInput, got %v", err)
	}

	req = registerRequest()
	req.Password = "short"
	if _, err := env.auth.Register(req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Short password: expected ErrInvalidInput, got %v", err)
	}
}
