package contact

import (
	"context"
	"errors"
	"regexp"

	"github.com/camille-osteopathe/booking-api/internal/captcha"
	"github.com/camille-osteopathe/booking-api/internal/config"
	"github.com/camille-osteopathe/booking-api/internal/email"
	"github.com/camille-osteopathe/booking-api/internal/model"
	"github.com/camille-osteopathe/booking-api/internal/ratelimit"
	apperrors "github.com/camille-osteopathe/booking-api/pkg/errors"
	"github.com/camille-osteopathe/booking-api/pkg/logger"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a successfully handled contact submission.
type Result struct {
	EmailID string
	// DevMode is set when no email provider is configured: the message is
	// logged instead of sent.
	DevMode bool
}

type Service struct {
	verifier        captcha.Verifier
	limiter         ratelimit.Limiter
	sender          email.Sender
	emailCfg        config.EmailConfig
	site            config.SiteConfig
	emailConfigured bool
	development     bool
	log             *logger.Logger
}

// NewService wires the contact pipeline. verifier may be nil when no captcha
// secret is configured; submissions then fail with a config error rather
// than silently skipping verification.
func NewService(verifier captcha.Verifier, limiter ratelimit.Limiter, sender email.Sender, cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		verifier:        verifier,
		limiter:         limiter,
		sender:          sender,
		emailCfg:        cfg.Email,
		site:            cfg.Site,
		emailConfigured: cfg.EmailConfigured(),
		development:     cfg.Server.Development,
		log:             log,
	}
}

// Send validates, throttles and captcha-checks a contact submission, then
// relays it to the practitioner's inbox as an escaped HTML email.
func (s *Service) Send(ctx context.Context, req *model.ContactRequest, clientIP string) (*Result, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, apperrors.BadRequest("invalid email address", nil)
	}

	res, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		// A broken limiter backend should not take the contact form down.
		s.log.Error(err, "rate limiter unavailable, allowing request")
	} else if !res.Allowed {
		return nil, apperrors.RateLimited(res.RetryAfter)
	}

	if s.verifier == nil {
		return nil, apperrors.Upstream("captcha verification is not configured", nil)
	}
	if err := s.verifier.Verify(ctx, req.CaptchaToken, clientIP); err != nil {
		var verr *captcha.VerificationError
		if errors.As(err, &verr) {
			if s.development {
				s.log.Warn("captcha rejected", "codes", verr.Codes)
			}
			return nil, apperrors.CaptchaRejected(err)
		}
		return nil, apperrors.Upstream("captcha service unreachable", err)
	}

	if !s.emailConfigured {
		s.log.Info("contact form submission (development mode)",
			"name", req.Name, "email", req.Email)
		return &Result{DevMode: true}, nil
	}

	subject, htmlBody, text := email.ContactMessage(req.Name, req.Email, req.Message, s.site.Address)
	emailID, err := s.sender.Send(ctx, email.Message{
		From:    s.emailCfg.From,
		To:      s.emailCfg.ContactEmail,
		ReplyTo: req.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    text,
	})
	if err != nil {
		return nil, apperrors.Upstream("failed to send email", err)
	}

	s.log.Info("contact message relayed", "email_id", emailID)
	return &Result{EmailID: emailID}, nil
}
