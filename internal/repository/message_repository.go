package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"annonsplats/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Message, error)
	// MarkRead flags every unread message in the thread addressed to
	// receiverID in a single statement and returns how many changed.
	MarkRead(ctx context.Context, applicationID, receiverID uuid.UUID) (int64, error)
	CountUnreadForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return insertMessage(ctx, r.db, msg)
}

func (r *messageRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Message, error) {
	msgs := []domain.Message{}
	query := `
		SELECT m.*, u.username AS sender_username, u.email_name AS sender_email_name
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.application_id = $1
		ORDER BY m.created_at ASC, m.id ASC`

	if err := r.db.SelectContext(ctx, &msgs, query, applicationID); err != nil {
		return nil, err
	}
	for i := range msgs {
		msgs[i].SenderName = domain.DisplayName(msgs[i].SenderUsername, msgs[i].SenderEmailName)
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, applicationID, receiverID uuid.UUID) (int64, error) {
	return markRead(ctx, r.db, applicationID, receiverID)
}

func markRead(ctx context.Context, e sqlx.ExecerContext, applicationID, receiverID uuid.UUID) (int64, error) {
	query := `
		UPDATE messages SET read_status = TRUE
		WHERE application_id = $1 AND receiver_id = $2 AND read_status = FALSE`

	res, err := e.ExecContext(ctx, query, applicationID, receiverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *messageRepository) CountUnreadForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read_status = FALSE`
	err := r.db.GetContext(ctx, &count, query, receiverID)
	return count, err
}

func (r *messageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	query := `
		SELECT ja.id AS application_id, ja.ad_id, a.title AS ad_title, ja.status,
			ja.applicant_id, ja.poster_id, ja.created_at,
			other.username AS other_username,
			other.email_name AS other_email_name,
			last.content AS last_message,
			last.created_at AS last_message_at,
			last.sender_username AS last_sender_username,
			last.sender_email_name AS last_sender_email_name,
			(SELECT COUNT(*) FROM messages um
				WHERE um.application_id = ja.id AND um.receiver_id = $1 AND um.read_status = FALSE) AS unread_count
		FROM job_applications ja
		JOIN ads a ON a.id = ja.ad_id
		JOIN users other ON other.id = CASE WHEN ja.applicant_id = $1 THEN ja.poster_id ELSE ja.applicant_id END
		LEFT JOIN LATERAL (
			SELECT m.content, m.created_at,
				su.username AS sender_username, su.email_name AS sender_email_name
			FROM messages m
			JOIN users su ON su.id = m.sender_id
			WHERE m.application_id = ja.id
				AND NOT (m.for_applicant_only AND m.is_system_message AND ja.poster_id = $1)
			ORDER BY m.created_at DESC
			LIMIT 1
		) last ON TRUE
		WHERE (ja.applicant_id = $1 OR ja.poster_id = $1)
			AND ja.status IN ('pending', 'accepted')`

	convs := []domain.Conversation{}
	if err := r.db.SelectContext(ctx, &convs, query, userID); err != nil {
		return nil, err
	}
	for i := range convs {
		convs[i].OtherName = domain.DisplayName(convs[i].OtherUsername, convs[i].OtherEmailName)
		if convs[i].LastSenderEmailName != nil {
			name := domain.DisplayName(convs[i].LastSenderUsername, *convs[i].LastSenderEmailName)
			convs[i].LastSenderName = &name
		}
	}
	domain.SortConversations(convs)
	return convs, nil
}
