package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func sessionMeta(c *fiber.Ctx) auth.SessionMeta {
	return auth.SessionMeta{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddress: c.IP(),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		case errors.Is(err, auth.ErrUsernameTaken):
			return middleware.Conflict("Username already taken")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registration successful. Please check your email for verification.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(c.Context(), input, sessionMeta(c))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email or password")
		}
		if errors.Is(err, auth.ErrEmailNotVerified) {
			return middleware.Forbidden("Email not verified. Please verify your email first.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input refreshInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken, sessionMeta(c))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return middleware.Unauthorized("Invalid refresh token")
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			return middleware.Unauthorized("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input refreshInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Context(), input.Token, input.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenExpired) {
			return middleware.BadRequest("Invalid or expired reset token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.BadRequest("Verification token is required")
	}

	if err := h.authService.VerifyEmail(c.Context(), token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrVerificationTokenExpired) {
			return middleware.BadRequest("Invalid or expired verification token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

func (h *AuthHandler) ResendVerificationEmail(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResendVerificationEmail(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists and is not verified, a verification email has been sent",
	})
}
