package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/advisor/internal/platform/auth"
)

// AuditEntry records who asked the advisor for what. It never carries
// request bodies, so patient details stay out of the audit trail.
type AuditEntry struct {
	Timestamp  time.Time
	RequestID  string
	UserID     string
	UserRoles  []string
	Action     string
	Method     string
	Path       string
	IPAddress  string
	StatusCode int
}

type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit logs one "advisory_access" event per advisory or CDS Hooks
// invocation, after the handler has run. Reads of reference data are not
// audited. An optional recorder receives the same entry.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			action := auditAction(req.Method, req.URL.Path)
			if action == "" {
				return next(c)
			}

			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				UserID:     auth.UserIDFromContext(req.Context()),
				UserRoles:  auth.RolesFromContext(req.Context()),
				Action:     action,
				Method:     req.Method,
				Path:       req.URL.Path,
				IPAddress:  c.RealIP(),
				StatusCode: c.Response().Status,
			}
			if he, ok := err.(*echo.HTTPError); ok {
				entry.StatusCode = he.Code
			}
			entry.RequestID, _ = c.Get("request_id").(string)

			for _, r := range recorders {
				if r == nil {
					continue
				}
				if recErr := r.RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "advisory_audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("action", entry.Action).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("advisory_access")

			return err
		}
	}
}

// auditAction names the audited operation, or returns "" for requests
// outside the audit scope.
//
//	POST /api/v1/advisory/dose              -> advisory.dose
//	POST /cds-services/drug-interactions    -> cds.drug-interactions
//	POST /cds-services/x/feedback           -> cds.x.feedback
func auditAction(method, path string) string {
	if method != http.MethodPost {
		return ""
	}
	switch {
	case strings.HasPrefix(path, "/api/v1/advisory/"):
		return joinAction("advisory", strings.TrimPrefix(path, "/api/v1/advisory/"))
	case strings.HasPrefix(path, "/cds-services/"):
		return joinAction("cds", strings.TrimPrefix(path, "/cds-services/"))
	}
	return ""
}

func joinAction(prefix, rest string) string {
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return ""
	}
	return prefix + "." + strings.ReplaceAll(rest, "/", ".")
}
