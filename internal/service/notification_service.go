package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/complainthub/complaint-service/internal/config"
	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/events"
	"github.com/complainthub/complaint-service/internal/notify"
)

// NotificationService emits best-effort emails for domain events. Delivery
// failures are logged and discarded; they never reach the write path.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notify.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig

	inflight sync.WaitGroup
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notify.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleComplaintStatusChanged)
}

// Flush blocks until in-flight sends finish. Used at shutdown and in tests.
func (n *NotificationService) Flush() {
	n.inflight.Wait()
}

func (n *NotificationService) handleComplaintCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintCreatedPayload)
	if !ok {
		return nil
	}

	n.sendAsync(payload.CustomerEmail, "Your complaint has been received",
		customerAckBody(event.ComplaintID, payload))
	n.sendAsync(n.cfg.AdminAddress, "New complaint submitted",
		adminAlertBody(event.ComplaintID, payload))
	return nil
}

func (n *NotificationService) handleComplaintStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		return nil
	}
	if payload.NewStatus != domain.ComplaintStatusResolved {
		return nil
	}

	n.sendAsync(payload.CustomerEmail, "Your complaint has been resolved",
		resolutionBody(event.ComplaintID, payload))
	return nil
}

// sendAsync delivers in a detached goroutine with its own timeout so a
// cancelled request context cannot abort the send.
func (n *NotificationService) sendAsync(to, subject, htmlBody string) {
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.sendTimeout())
		defer cancel()
		if err := n.mailer.Send(ctx, to, subject, htmlBody); err != nil {
			n.logger.Warn("notification delivery failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}

func (n *NotificationService) sendTimeout() time.Duration {
	return n.cfg.SendTimeout()
}

func customerAckBody(complaintID string, p events.ComplaintCreatedPayload) string {
	return fmt.Sprintf(`<h2>Thank you for your complaint</h2>
<p>Hi %s,</p>
<p>Your complaint titled <b>%s</b> has been received. Our team will review and get back to you soon.</p>
<p><b>Complaint ID:</b> %s</p>
<p>Status: %s</p>
<hr/>
<p>ComplaintHub Team</p>`, p.CustomerName, p.Title, complaintID, p.Status)
}

func adminAlertBody(complaintID string, p events.ComplaintCreatedPayload) string {
	return fmt.Sprintf(`<h2>New Complaint Submitted</h2>
<p><b>Title:</b> %s</p>
<p><b>Description:</b> %s</p>
<p><b>Customer:</b> %s (%s)</p>
<p><b>Category:</b> %s</p>
<p><b>Priority:</b> %s</p>
<p><b>Status:</b> %s</p>
<p><b>Complaint ID:</b> %s</p>`,
		p.Title, p.Description, p.CustomerName, p.CustomerEmail, p.Category, p.Priority, p.Status, complaintID)
}

func resolutionBody(complaintID string, p events.ComplaintStatusChangedPayload) string {
	return fmt.Sprintf(`<h2>Your complaint has been resolved</h2>
<p>Hi %s,</p>
<p>Your complaint titled <b>%s</b> has been marked as resolved.</p>
<p><b>Complaint ID:</b> %s</p>
<hr/>
<p>ComplaintHub Team</p>`, p.CustomerName, p.Title, complaintID)
}
