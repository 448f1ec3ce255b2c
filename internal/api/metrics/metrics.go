// Package metrics defines and registers the custom Prometheus metrics of the
// SkillBridge API. HTTP request metrics come from the echoprometheus
// middleware; this package covers the auth flows.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

const namespace = "skillbridge"

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", or the failure code (e.g. "invalid_credentials", "role_mismatch")
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts registration attempts.
// Labels:
//   - role: "Job Seeker", "Employer" or "Admin"
//   - result: "success" or the failure code
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of registration attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the auth middleware.
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"reason"},
)

// AccountRecoveryTotal counts verification and password reset operations.
// Labels:
//   - flow: "verify_email", "resend_verification", "forgot_password", "reset_password"
//   - result: "success" or the failure code
var AccountRecoveryTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_recovery_total",
		Help:      "Total number of verification and password reset operations.",
	},
	[]string{"flow", "result"},
)

// Result converts an operation error into a bounded label value.
func Result(err error) string {
	var fields validation.FieldErrors
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &fields):
		return "validation_failed"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrEmailNotVerified):
		return "email_not_verified"
	case errors.Is(err, domain.ErrUserExists):
		return "user_exists"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "not_authenticated"
	default:
		return "error"
	}
}
