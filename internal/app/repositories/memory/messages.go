package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func containsFold(content, q string) bool {
	return q == "" || strings.Contains(strings.ToLower(content), strings.ToLower(q))
}

type messageRepository struct{ *base }

func (r *messageRepository) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.d.id()
	r.stamp(&message.CreatedAt)
	r.d.messages[message.ID] = *message
	return nil
}

func (r *messageRepository) GetByID(_ context.Context, id int64) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.d.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return &m, nil
}

func (r *messageRepository) filter(keep func(m models.Message) bool) []*models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := []*models.Message{}
	for _, m := range r.d.messages {
		if keep(m) {
			messages = append(messages, &m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages
}

func (r *messageRepository) ListByParticipant(_ context.Context, userID int64, q string) ([]*models.Message, error) {
	return r.filter(func(m models.Message) bool {
		return (m.SenderID == userID || m.RecipientID == userID) && containsFold(m.Content, q)
	}), nil
}

func (r *messageRepository) ListThread(_ context.Context, userA, userB int64) ([]*models.Message, error) {
	return r.filter(func(m models.Message) bool {
		return (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA)
	}), nil
}

func (r *messageRepository) MarkThreadRead(_ context.Context, recipientID, senderID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, m := range r.d.messages {
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.IsRead {
			m.IsRead = true
			r.d.messages[id] = m
			n++
		}
	}
	return n, nil
}

func (r *messageRepository) MarkRead(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.d.messages[id]
	if !ok {
		return apperrors.ErrMessageNotFound
	}
	m.IsRead = true
	r.d.messages[id] = m
	return nil
}

type clubMessageRepository struct{ *base }

func (r *clubMessageRepository) Create(_ context.Context, message *models.ClubMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.d.id()
	r.stamp(&message.CreatedAt)
	stored := *message
	stored.Sender = nil
	stored.ReadByViewer = false
	r.d.clubMessages[message.ID] = stored
	return nil
}

func (r *clubMessageRepository) GetByID(_ context.Context, id int64) (*models.ClubMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.d.clubMessages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return &m, nil
}

func (r *clubMessageRepository) list(viewerID int64, withSender bool, keep func(m models.ClubMessage) bool) []*models.ClubMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := []*models.ClubMessage{}
	for _, m := range r.d.clubMessages {
		if !keep(m) {
			continue
		}
		_, m.ReadByViewer = r.d.clubReads[pair{m.ID, viewerID}]
		if withSender {
			u, ok := r.d.users[m.SenderID]
			if !ok {
				continue
			}
			m.Sender = &u
		}
		messages = append(messages, &m)
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages
}

func (r *clubMessageRepository) ListByClubs(_ context.Context, clubIDs []int64, q string, viewerID int64) ([]*models.ClubMessage, error) {
	clubs := make(map[int64]bool, len(clubIDs))
	for _, id := range clubIDs {
		clubs[id] = true
	}
	return r.list(viewerID, false, func(m models.ClubMessage) bool {
		return clubs[m.ClubID] && containsFold(m.Content, q)
	}), nil
}

func (r *clubMessageRepository) ListByClub(_ context.Context, clubID, viewerID int64) ([]*models.ClubMessage, error) {
	return r.list(viewerID, true, func(m models.ClubMessage) bool {
		return m.ClubID == clubID
	}), nil
}

func (r *clubMessageRepository) MarkRead(_ context.Context, messageID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.d.clubMessages[messageID]; !ok {
		return apperrors.ErrMessageNotFound
	}
	r.d.clubReads[pair{messageID, userID}] = struct{}{}
	return nil
}

type notificationRepository struct{ *base }

func (r *notificationRepository) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = r.d.id()
	r.stamp(&n.CreatedAt)
	r.d.notifications[n.ID] = *n
	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := []*models.Notification{}
	for _, n := range r.d.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		all = append(all, &n)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Notification{}, total, nil
	}
	end := len(all)
	if limit > 0 && int(offset)+limit < end {
		end = int(offset) + limit
	}
	return all[offset:end], total, nil
}

func (r *notificationRepository) CountUnread(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.d.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.d.notifications[id]
	if !ok || n.UserID != userID {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	r.d.notifications[id] = n
	return nil
}

func (r *notificationRepository) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, n := range r.d.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.d.notifications[id] = n
			count++
		}
	}
	return count, nil
}
