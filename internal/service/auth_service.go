package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/config"
	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login checks an employee PIN. Only managers may log in while the
	// register is closed.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, token string) (*dto.LoginResponse, error)
	SetPIN(ctx context.Context, employeeID, pin string) error
}

type authService struct {
	employees repository.EmployeeRepository
	register  RegisterService
	cfg       *config.Config
	cost      int
}

func NewAuthService(employees repository.EmployeeRepository, register RegisterService, cfg *config.Config) AuthService {
	return &authService{employees: employees, register: register, cfg: cfg, cost: bcrypt.DefaultCost}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if emp.PINHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)); err != nil {
		log.Warn().Str("employee_id", emp.ID).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	if emp.Role != model.RoleManager && !s.register.IsOpen() {
		return nil, fmt.Errorf("%w: a manager must open the register first", ErrRegisterClosed)
	}
	return s.session(emp)
}

func (s *authService) Refresh(ctx context.Context, token string) (*dto.LoginResponse, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	id, ok := claims["employee_id"].(string)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(emp)
}

func (s *authService) SetPIN(ctx context.Context, employeeID, pin string) error {
	if len(pin) < 4 || len(pin) > 8 {
		return fmt.Errorf("%w: pin must be 4 to 8 digits", ErrInvalidInput)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: pin must be numeric", ErrInvalidInput)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return err
	}
	_, err = s.employees.Update(ctx, employeeID, func(e *model.Employee) error {
		e.PINHash = string(hash)
		return nil
	})
	return err
}

func (s *authService) session(emp *model.Employee) (*dto.LoginResponse, error) {
	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(emp, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.SessionUser{
			ID:    emp.ID,
			Name:  emp.Name,
			Title: emp.Title,
			Role:  emp.Role,
		},
	}, nil
}

func (s *authService) generateToken(emp *model.Employee, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"employee_id": emp.ID,
		"name":        emp.Name,
		"role":        emp.Role,
		"exp":         now.Add(duration).Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
