package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/api/metrics"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// bindForm decodes the JSON body into form and validates it with the echo
// validator, which normalizes the form in place.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(form)
}

// SignUpJobSeeker registers an undergraduate account.
//
// @Summary      Register a job seeker
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.JobSeekerSignup  true  "Job seeker registration"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorDoc
// @Failure      409   {object}  errorDoc
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/signup/jobseeker [post]
func (h *AuthHandler) SignUpJobSeeker(c echo.Context) error {
	var form validation.JobSeekerSignup
	if err := bindForm(c, &form); err != nil {
		metrics.SignUpsTotal.WithLabelValues(domain.RoleJobSeeker.String(), metrics.Result(err)).Inc()
		return err
	}

	user, err := h.authService.SignUpJobSeeker(c.Request().Context(), form)
	metrics.SignUpsTotal.WithLabelValues(domain.RoleJobSeeker.String(), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signupResponse{User: toUserResponse(user), VerificationRequired: !user.EmailVerified})
}

// SignUpEmployer registers a company account.
//
// @Summary      Register an employer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.EmployerSignup  true  "Employer registration"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorDoc
// @Failure      409   {object}  errorDoc
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/signup/employer [post]
func (h *AuthHandler) SignUpEmployer(c echo.Context) error {
	var form validation.EmployerSignup
	if err := bindForm(c, &form); err != nil {
		metrics.SignUpsTotal.WithLabelValues(domain.RoleEmployer.String(), metrics.Result(err)).Inc()
		return err
	}

	user, err := h.authService.SignUpEmployer(c.Request().Context(), form)
	metrics.SignUpsTotal.WithLabelValues(domain.RoleEmployer.String(), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signupResponse{User: toUserResponse(user), VerificationRequired: !user.EmailVerified})
}

// SignUpAdmin creates another administrator. Admin only.
//
// @Summary      Register an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validation.AdminSignup  true  "Admin registration"
// @Success      201   {object}  signupResponse
// @Failure      401   {object}  errorDoc
// @Failure      403   {object}  errorDoc
// @Failure      409   {object}  errorDoc
// @Failure      422   {object}  errorDoc
// @Router       /api/auth/signup/admin [post]
func (h *AuthHandler) SignUpAdmin(c echo.Context) error {
	var form validation.AdminSignup
	if err := bindForm(c, &form); err != nil {
		return err
	}

	user, err := h.authService.SignUpAdmin(c.Request().Context(), form)
	metrics.SignUpsTotal.WithLabelValues(domain.RoleAdmin.String(), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signupResponse{User: toUserResponse(user)})
}

// SignIn authenticates with email, password and the selected role.
//
// @Summary      Sign in
// @Description  Unknown email and wrong password both answer 401 invalid_credentials. A correct password with a different role answers 403 role_mismatch.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.SignIn  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorDoc
// @Failure      403   {object}  errorDoc
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var form validation.SignIn
	if err := bindForm(c, &form); err != nil {
		metrics.SignInsTotal.WithLabelValues(metrics.Result(err)).Inc()
		return err
	}

	in := ports.SignInInput{Email: form.Email, Password: form.Password}
	if form.Role != "" {
		role, err := domain.ParseRole(form.Role)
		if err != nil {
			return validation.FieldErrors{{Field: "role", Code: validation.CodeInvalidChoice, Message: "Role is not valid"}}
		}
		in.Role = role
	}

	session, err := h.authService.SignIn(c.Request().Context(), in)
	metrics.SignInsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Me returns the signed-in account.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorDoc
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SignOut revokes the presented token.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorDoc
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.SignOut(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh exchanges a valid token for a new one.
//
// @Summary      Refresh session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorDoc
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	session, err := h.authService.Refresh(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// VerifyEmail confirms an address from the emailed link and signs the user in.
//
// @Summary      Verify email
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Param        email  query     string  true  "Email address"
// @Success      200    {object}  sessionResponse
// @Failure      400    {object}  errorDoc
// @Router       /api/auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	email := strings.TrimSpace(c.QueryParam("email"))
	if token == "" || email == "" {
		metrics.AccountRecoveryTotal.WithLabelValues("verify_email", "invalid_token").Inc()
		return domain.ErrInvalidToken
	}

	session, err := h.authService.VerifyEmail(c.Request().Context(), token, email)
	metrics.AccountRecoveryTotal.WithLabelValues("verify_email", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// ResendVerification sends a new verification link. Always 202 for a
// well-formed address so registered emails cannot be probed.
//
// @Summary      Resend verification email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.ResendVerification  true  "Email"
// @Success      202   {object}  messageResponse
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var form validation.ResendVerification
	if err := bindForm(c, &form); err != nil {
		return err
	}

	err := h.authService.ResendVerification(c.Request().Context(), form.Email)
	metrics.AccountRecoveryTotal.WithLabelValues("resend_verification", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "If the address is registered and unverified, a new link has been sent."})
}

// ForgotPassword sends a password reset link. Always 202 for a well-formed
// address.
//
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.ForgotPassword  true  "Email"
// @Success      202   {object}  messageResponse
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var form validation.ForgotPassword
	if err := bindForm(c, &form); err != nil {
		return err
	}

	err := h.authService.ForgotPassword(c.Request().Context(), form.Email)
	metrics.AccountRecoveryTotal.WithLabelValues("forgot_password", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "If the address is registered, a reset link has been sent."})
}

// ResetPassword sets a new password using the emailed token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validation.ResetPassword  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorDoc
// @Failure      422   {object}  errorDoc
// @Failure      429   {object}  errorDoc
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var form validation.ResetPassword
	if err := bindForm(c, &form); err != nil {
		return err
	}

	err := h.authService.ResetPassword(c.Request().Context(), form.Token, form.Password)
	metrics.AccountRecoveryTotal.WithLabelValues("reset_password", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated. You can now sign in."})
}
