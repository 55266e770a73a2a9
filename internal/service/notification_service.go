package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"devimpact/internal/domain"
	"devimpact/pkg/logger"
	"devimpact/pkg/metrics"
)

// Email templates known to the send-email function
const (
	TemplateApproved = "approved"
	TemplateRejected = "rejected"
	TemplateRemoved  = "removed"
)

const emailTimeout = 15 * time.Second

// FunctionInvoker calls a hosted backend function
type FunctionInvoker interface {
	InvokeFunction(ctx context.Context, name string, body interface{}, out interface{}) error
}

// StatusEmail is one status-update notification
type StatusEmail struct {
	To       string
	Name     string
	Template string
	TeamName string
}

type emailRequest struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Template string    `json:"template"`
	Data     emailData `json:"data"`
}

type emailData struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	TeamName *string `json:"teamName"`
}

// NotificationService sends status emails through the send-email function.
// Sends are fire-and-forget: failures are logged and counted, never returned
// to the caller of Notify.
type NotificationService struct {
	invoker  FunctionInvoker
	function string
	enabled  bool
	logger   *logger.Logger
	wg       sync.WaitGroup
}

// NewNotificationService creates a notification service
func NewNotificationService(invoker FunctionInvoker, function string, enabled bool, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		invoker:  invoker,
		function: function,
		enabled:  enabled,
		logger:   logger.Named("notifier"),
	}
}

// TemplateForStatus returns the email template for a status change. Pending
// has no template and produces no email.
func TemplateForStatus(status domain.Status) (string, bool) {
	switch status {
	case domain.StatusApproved:
		return TemplateApproved, true
	case domain.StatusRejected:
		return TemplateRejected, true
	}
	return "", false
}

// SendStatusEmail sends one email and returns the delivery error
func (n *NotificationService) SendStatusEmail(ctx context.Context, email StatusEmail) error {
	req := emailRequest{
		To:       email.To,
		Subject:  "DevImpact Hackathon Registration " + capitalize(email.Template),
		Template: email.Template,
		Data: emailData{
			Name:   email.Name,
			Status: email.Template,
		},
	}
	if email.TeamName != "" {
		req.Data.TeamName = &email.TeamName
	}

	err := n.invoker.InvokeFunction(ctx, n.function, req, nil)
	metrics.RecordEmail(email.Template, err)
	return err
}

// Notify sends the emails in the background with a detached, time-bounded
// context so they outlive the HTTP request that triggered them.
func (n *NotificationService) Notify(emails ...StatusEmail) {
	if n == nil || !n.enabled || len(emails) == 0 {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()

		for _, email := range emails {
			if err := n.SendStatusEmail(ctx, email); err != nil {
				n.logger.WithError(err).WithFields(map[string]interface{}{
					"template": email.Template,
					"team":     email.TeamName,
				}).Error("Failed to send status email")
				continue
			}
			n.logger.WithField("template", email.Template).Debug("Status email sent")
		}
	}()
}

// Wait blocks until all in-flight sends finish. Used on shutdown.
func (n *NotificationService) Wait() {
	n.wg.Wait()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
