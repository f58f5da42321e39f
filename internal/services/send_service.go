package services

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"airmailer/internal/models"
	"airmailer/internal/repositories"
	"airmailer/internal/validators"
)

// SendService is the quota-gated dispatch pipeline: validate, sanitize,
// reserve a slot under the daily ceiling, relay, record the outcome.
type SendService interface {
	Send(ctx context.Context, accountID int, req *models.SendRequest) error
	Logs(ctx context.Context, accountID int) ([]*models.EmailLog, error)
}

type sendService struct {
	logs        repositories.EmailLogRepository
	mailer      Mailer
	dailyLimit  int
	logFailures bool
}

func NewSendService(logs repositories.EmailLogRepository, mailer Mailer, dailyLimit int, logFailures bool) SendService {
	return &sendService{
		logs:        logs,
		mailer:      mailer,
		dailyLimit:  dailyLimit,
		logFailures: logFailures,
	}
}

const recentLogLimit = 50

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	eventAttrRe   = regexp.MustCompile(`(?i)on\w+="[^"]*"`)
	jsURIRe       = regexp.MustCompile(`(?i)javascript:`)
)

// sanitizeHTML strips script blocks, inline event-handler attributes and
// javascript: URIs before the body reaches the relay.
func sanitizeHTML(html string) string {
	html = scriptBlockRe.ReplaceAllString(html, "")
	html = eventAttrRe.ReplaceAllString(html, "")
	html = jsURIRe.ReplaceAllString(html, "")
	return html
}

// Send runs the pipeline for one validated request. The quota reservation is
// a single conditional insert; on relay failure the reservation is deleted
// unless failure logging is on, so the daily count only ever reflects real
// dispatches.
func (s *sendService) Send(ctx context.Context, accountID int, req *models.SendRequest) error {
	if err := validators.MessageValidator(req.To, req.Subject, req.Text, req.HTML); err != nil {
		return err
	}

	html := req.HTML
	if html != "" {
		html = sanitizeHTML(html)
	}

	logID, ok, err := s.logs.Reserve(ctx, accountID, req.To, s.dailyLimit)
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuotaExceeded
	}

	if err := s.mailer.Send(req.To, req.Subject, req.Text, html); err != nil {
		if s.logFailures {
			if markErr := s.logs.MarkFailure(ctx, logID); markErr != nil {
				log.Printf("[dispatch][send] failure record for account=%d: %v", accountID, markErr)
			}
		} else if delErr := s.logs.Delete(ctx, logID); delErr != nil {
			log.Printf("[dispatch][send] reservation cleanup for account=%d: %v", accountID, delErr)
		}
		return fmt.Errorf("relay: %w", err)
	}

	if err := s.logs.MarkSuccess(ctx, logID); err != nil {
		// the mail left the relay; surface the store error but nothing to undo
		return err
	}
	return nil
}

func (s *sendService) Logs(ctx context.Context, accountID int) ([]*models.EmailLog, error) {
	return s.logs.ListRecent(ctx, accountID, recentLogLimit)
}
