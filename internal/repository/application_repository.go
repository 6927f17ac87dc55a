package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"annonsplats/internal/domain"
)

type ApplicationRepository interface {
	CreateWithMessage(ctx context.Context, app *domain.Application, intro *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ExistsForApplicant(ctx context.Context, adID, applicantID uuid.UUID) (bool, error)
	// TransitionWithMessage moves the application from one status to the
	// next and appends msg when non-nil. It returns false when the
	// application was no longer in status from.
	TransitionWithMessage(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, msg *domain.Message) (bool, error)
	// AcknowledgeRejection moves a rejected application to rejected_read
	// and marks the applicant's unread messages in it as read. marked is
	// zero when the application was not rejected.
	AcknowledgeRejection(ctx context.Context, id, applicantID uuid.UUID) (updated bool, marked int64, err error)
	CountPendingForPoster(ctx context.Context, posterID uuid.UUID) (int, error)
	ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error)
	ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error)
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const insertMessageQuery = `
	INSERT INTO messages (id, application_id, sender_id, receiver_id, content, is_system_message, for_applicant_only, read_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at`

func insertMessage(ctx context.Context, q sqlx.QueryerContext, msg *domain.Message) error {
	return q.QueryRowxContext(ctx, insertMessageQuery,
		msg.ID, msg.ApplicationID, msg.SenderID, msg.ReceiverID, msg.Content,
		msg.IsSystemMessage, msg.ForApplicantOnly, msg.ReadStatus,
	).Scan(&msg.CreatedAt)
}

func (r *applicationRepository) CreateWithMessage(ctx context.Context, app *domain.Application, intro *domain.Message) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO job_applications (id, ad_id, applicant_id, poster_id, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			app.ID, app.AdID, app.ApplicantID, app.PosterID, app.Status,
		).Scan(&app.CreatedAt, &app.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyApplied
			}
			return err
		}

		if intro == nil {
			return nil
		}
		return insertMessage(ctx, tx, intro)
	})
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM job_applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ExistsForApplicant(ctx context.Context, adID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE ad_id = $1 AND applicant_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, adID, applicantID)
	return exists, err
}

func transition(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, from, to domain.ApplicationStatus) (bool, error) {
	query := `UPDATE job_applications SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := tx.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *applicationRepository) TransitionWithMessage(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, msg *domain.Message) (bool, error) {
	updated := false
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		updated, err = transition(ctx, tx, id, from, to)
		if err != nil || !updated || msg == nil {
			return err
		}
		return insertMessage(ctx, tx, msg)
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *applicationRepository) AcknowledgeRejection(ctx context.Context, id, applicantID uuid.UUID) (bool, int64, error) {
	var (
		updated bool
		marked  int64
	)
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		updated, err = transition(ctx, tx, id, domain.ApplicationRejected, domain.ApplicationRejectedRead)
		if err != nil || !updated {
			return err
		}
		marked, err = markRead(ctx, tx, id, applicantID)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return updated, marked, nil
}

func (r *applicationRepository) CountPendingForPoster(ctx context.Context, posterID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM job_applications WHERE poster_id = $1 AND status = 'pending'`
	err := r.db.GetContext(ctx, &count, query, posterID)
	return count, err
}

const receivedSelect = `
	SELECT ja.*,
		a.title AS ad_title,
		u.username AS applicant_username,
		u.email_name AS applicant_email_name,
		(SELECT m.content FROM messages m
			WHERE m.application_id = ja.id AND m.is_system_message
			ORDER BY m.created_at ASC LIMIT 1) AS initial_message
	FROM job_applications ja
	JOIN ads a ON a.id = ja.ad_id
	JOIN users u ON u.id = ja.applicant_id
	WHERE ja.poster_id = $1`

func (r *applicationRepository) ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error) {
	query := receivedSelect
	args := []interface{}{posterID}

	switch {
	case filter.ApplicationID != nil:
		query += ` AND ja.id = $2`
		args = append(args, *filter.ApplicationID)
	case filter.AdID != nil:
		query += ` AND ja.ad_id = $2`
		args = append(args, *filter.AdID)
	}
	query += ` ORDER BY ja.created_at DESC`

	apps := []domain.ReceivedApplication{}
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].ApplicantName = domain.DisplayName(apps[i].ApplicantUsername, apps[i].ApplicantEmail)
	}
	return apps, nil
}

func (r *applicationRepository) ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error) {
	query := `
		SELECT ja.*,
			a.title AS ad_title,
			a.region AS ad_region,
			a.municipality AS ad_municipality,
			u.username AS poster_username,
			u.email_name AS poster_email_name
		FROM job_applications ja
		JOIN ads a ON a.id = ja.ad_id
		JOIN users u ON u.id = ja.poster_id
		WHERE ja.applicant_id = $1
		ORDER BY ja.created_at DESC`

	apps := []domain.SentApplication{}
	if err := r.db.SelectContext(ctx, &apps, query, applicantID); err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].PosterName = domain.DisplayName(apps[i].PosterUsername, apps[i].PosterEmailName)
	}
	return apps, nil
}
