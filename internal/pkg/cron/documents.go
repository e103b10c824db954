package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corehr/hr-backend-go/internal/config"
	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
)

// DocumentJobs contains the document sweeps: expiry warnings for personal
// documents and acknowledgment reminders for pending assignments.
type DocumentJobs struct {
	personalDocs document.PersonalDocumentRepository
	assignments  document.AssignmentRepository
	notifier     notification.Service
	cfg          config.SweepConfig

	Now func() time.Time
}

// NewDocumentJobs creates document cron jobs
func NewDocumentJobs(
	personalDocs document.PersonalDocumentRepository,
	assignments document.AssignmentRepository,
	notifier notification.Service,
	cfg config.SweepConfig,
) *DocumentJobs {
	return &DocumentJobs{
		personalDocs: personalDocs,
		assignments:  assignments,
		notifier:     notifier,
		cfg:          cfg,
		Now:          time.Now,
	}
}

// RegisterJobs registers all document-related cron jobs. Both jobs tick
// hourly; the expiry sweep additionally gates itself to the configured hour
// so it effectively runs once a day.
func (j *DocumentJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"personal_document_expiry_warnings",
		1*time.Hour,
		j.ExpiryWarnings,
	)

	scheduler.AddJob(
		"acknowledgment_reminders",
		1*time.Hour,
		j.AcknowledgmentReminders,
	)
}

// ExpiryWarnings notifies owners of personal documents entering their
// tracking window or already expired. Runs only at the configured UTC hour.
func (j *DocumentJobs) ExpiryWarnings(ctx context.Context) error {
	if j.Now().UTC().Hour() != j.cfg.RunHourUTC {
		return nil
	}
	return j.SweepExpiry(ctx)
}

// SweepExpiry is the ungated expiry sweep. The is_expiry_notified flag on
// each document makes the sweep idempotent: a document is reported once and
// becomes eligible again only when its expiry date is renewed.
func (j *DocumentJobs) SweepExpiry(ctx context.Context) error {
	now := j.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	candidates, err := j.personalDocs.ListUnnotified(ctx)
	if err != nil {
		return fmt.Errorf("failed to list personal documents: %w", err)
	}

	for _, candidate := range candidates {
		if candidate.ExpiryTrackingDays == nil {
			// The type does not track expiry.
			continue
		}

		doc := candidate.Document
		window := *candidate.ExpiryTrackingDays

		var severity notification.Severity
		var title, message string

		name := doc.DocumentNumber
		if doc.DocumentTypeName != nil {
			name = fmt.Sprintf("%s %s", *doc.DocumentTypeName, doc.DocumentNumber)
		}

		switch {
		case doc.IsExpired(today):
			severity = notification.SeverityError
			title = "Document expired"
			message = fmt.Sprintf("Your document %s expired on %s. Please renew it.",
				name, doc.ExpiryDate.Format("2006-01-02"))
		case doc.DaysUntilExpiry(today) <= window:
			daysLeft := doc.DaysUntilExpiry(today)
			if daysLeft <= j.cfg.ExpiryWarningDays {
				severity = notification.SeverityWarning
			} else {
				severity = notification.SeverityInfo
			}
			title = "Document expiring soon"
			message = fmt.Sprintf("Your document %s expires on %s (%d days left).",
				name, doc.ExpiryDate.Format("2006-01-02"), daysLeft)
		default:
			continue
		}

		// Synchronous insert: a queued-but-unflushed notification would be
		// invisible to the next run's dedup reads. One failing document
		// must not block the rest of the batch; an unmarked document is
		// retried next run.
		related := &entity.Ref{Kind: entity.KindPersonalDocument, ID: doc.ID}
		if err := j.notifier.NotifyNow(ctx, doc.UserID, severity, title, message, related); err != nil {
			slog.Error("failed to send expiry notification", "document_id", doc.ID, "error", err)
			continue
		}

		if err := j.personalDocs.MarkExpiryNotified(ctx, doc.ID); err != nil {
			slog.Error("failed to mark document notified", "document_id", doc.ID, "error", err)
		}
	}

	return nil
}

// AcknowledgmentReminders nudges assignees with pending acknowledgments.
// Reminders repeat at the urgent rate close to the deadline and at the
// notice rate further out; the last notification about the same document is
// the dedup anchor, so the sweep can run as often as it likes.
func (j *DocumentJobs) AcknowledgmentReminders(ctx context.Context) error {
	now := j.Now().UTC()

	pending, err := j.assignments.ListPendingWithDeadline(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list pending assignments: %w", err)
	}

	for _, assignment := range pending {
		if assignment.Deadline == nil {
			continue
		}
		timeLeft := assignment.Deadline.Sub(now)

		var repeat time.Duration
		var severity notification.Severity
		switch {
		case timeLeft <= j.cfg.UrgentWindow:
			repeat = j.cfg.UrgentRepeat
			severity = notification.SeverityWarning
		case timeLeft <= j.cfg.NoticeWindow:
			repeat = j.cfg.NoticeRepeat
			severity = notification.SeverityInfo
		default:
			continue
		}

		related := entity.Ref{Kind: entity.KindDocument, ID: assignment.DocumentID}
		last, ok, err := j.notifier.LastRelatedAt(ctx, assignment.UserID, related)
		if err != nil {
			slog.Error("failed to check last reminder", "assignment_id", assignment.ID, "error", err)
			continue
		}
		if ok && now.Sub(last) < repeat {
			continue
		}

		title := "Acknowledgment pending"
		name := "a document"
		if assignment.DocumentTitle != nil {
			name = fmt.Sprintf("%q", *assignment.DocumentTitle)
		}
		message := fmt.Sprintf("Please acknowledge %s before %s.",
			name, assignment.Deadline.Format(time.RFC3339))

		if err := j.notifier.NotifyNow(ctx, assignment.UserID, severity, title, message, &related); err != nil {
			slog.Error("failed to send reminder", "assignment_id", assignment.ID, "error", err)
		}
	}

	return nil
}
