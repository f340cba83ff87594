package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/oauth"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	txManager database.TxManager
	employee.EmployeeRepository
	auth.TokenRepository
	jwtService     jwt.Service
	googleService  oauth.GoogleService
	hrUsername     string
	hrPasswordHash string
}

// NewAuthService wires authentication. googleService may be nil, in which
// case the Google endpoints report auth.ErrOAuthDisabled.
func NewAuthService(
	txManager database.TxManager,
	employeeRepository employee.EmployeeRepository,
	tokenRepository auth.TokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	hrUsername string,
	hrPasswordHash string,
) auth.AuthService {
	return &AuthServiceImpl{
		txManager:          txManager,
		EmployeeRepository: employeeRepository,
		TokenRepository:    tokenRepository,
		jwtService:         jwtService,
		googleService:      googleService,
		hrUsername:         hrUsername,
		hrPasswordHash:     hrPasswordHash,
	}
}

func (a *AuthServiceImpl) hrPrincipal() auth.Principal {
	return auth.Principal{
		Subject: auth.HRSubject(a.hrUsername),
		Name:    a.hrUsername,
		Role:    auth.RoleHR,
	}
}

func employeePrincipal(emp employee.Employee) auth.Principal {
	id := emp.ID
	return auth.Principal{
		Subject:    emp.ID,
		Name:       emp.Name,
		Role:       auth.RoleEmployee,
		EmployeeID: &id,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	name := strings.TrimSpace(loginReq.Name)

	if strings.EqualFold(name, a.hrUsername) {
		if err := bcrypt.CompareHashAndPassword([]byte(a.hrPasswordHash), []byte(loginReq.Password)); err != nil {
			slog.Info("HR login rejected", "name", name)
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return a.issueTokens(ctx, a.hrPrincipal(), sessionTrackReq)
	}

	emp, err := a.EmployeeRepository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by name: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(loginReq.Password)); err != nil {
		slog.Info("employee login rejected", "employee_id", emp.ID)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, employeePrincipal(emp), sessionTrackReq)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, principal auth.Principal, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	tokenResponse := auth.TokenResponse{Role: string(principal.Role)}
	if principal.EmployeeID != nil {
		tokenResponse.EmployeeID = *principal.EmployeeID
	}

	err := a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(principal)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(principal.Subject)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.TokenRepository.CreateRefreshToken(txCtx, principal.Subject, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// GoogleLoginURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleLoginURL(state string) (string, error) {
	if a.googleService == nil {
		return "", auth.ErrOAuthDisabled
	}
	return a.googleService.RedirectURL(state), nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, req auth.GoogleCallbackRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if a.googleService == nil {
		return auth.TokenResponse{}, auth.ErrOAuthDisabled
	}

	token, err := a.googleService.VerifyToken(ctx, req.Code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange google code: %w", err)
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get google user info: %w", err)
	}

	if !info.VerifiedEmail || !a.googleService.IsAllowed(info.Email) {
		slog.Info("google sign-in rejected", "email", info.Email)
		return auth.TokenResponse{}, auth.ErrOAuthNotAllowed
	}

	return a.issueTokens(ctx, a.hrPrincipal(), sessionTrackReq)
}

// RefreshToken implements auth.AuthService. The presented refresh token is
// revoked and replaced.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	subject, err := a.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.TokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	principal, err := a.resolveSubject(ctx, subject)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.TokenRepository.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, principal, sessionTrackReq)
}

// resolveSubject maps a token subject back to a live identity. Deleted
// employees and renamed HR accounts can no longer refresh.
func (a *AuthServiceImpl) resolveSubject(ctx context.Context, subject string) (auth.Principal, error) {
	if strings.HasPrefix(subject, "hr:") {
		if subject != auth.HRSubject(a.hrUsername) {
			return auth.Principal{}, auth.ErrInvalidToken
		}
		return a.hrPrincipal(), nil
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.Principal{}, auth.ErrInvalidToken
		}
		return auth.Principal{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return employeePrincipal(emp), nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string, accessToken string) error {
	if accessToken != "" {
		if token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), accessToken); err == nil {
			a.jwtService.RevokeToken(accessToken, token.Expiration().Unix())
		}
	}

	if refreshToken == "" {
		return nil
	}

	return a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		isRevoked, err := a.TokenRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.TokenRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}
