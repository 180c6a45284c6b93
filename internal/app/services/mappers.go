package services

import (
	"context"
	"errors"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/helpers"
)

func userSummary(u *models.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: helpers.AvatarURL(u.Username),
	}
}

func userSummaries(users []*models.User) []dto.UserSummary {
	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary(u))
	}
	return out
}

func directMessageResponse(m *models.Message) dto.DirectMessageResponse {
	return dto.DirectMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

func clubMessageResponse(m *models.ClubMessage) dto.ClubMessageResponse {
	sender := userSummary(m.Sender)
	if m.Sender == nil {
		sender.ID = m.SenderID
	}
	return dto.ClubMessageResponse{
		ID:        m.ID,
		ClubID:    m.ClubID,
		Sender:    sender,
		Content:   m.Content,
		ParentID:  m.ParentID,
		IsRead:    m.ReadByViewer,
		CreatedAt: m.CreatedAt,
	}
}

func notificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func reactionResult(r *models.Reaction, username string) dto.ReactionResult {
	return dto.ReactionResult{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  username,
		Type:      string(r.Type),
		TypeLabel: r.Type.Label(),
		Comment:   r.Comment,
		ParentID:  r.ParentID,
		CreatedAt: helpers.FormatDisplayTime(r.CreatedAt),
	}
}

// clubResponse builds the viewer-relative view of a club
func clubResponse(ctx context.Context, repos *repositories.Repositories, authz *auth.AuthorizationService, club *models.Club, viewerID int64) (*dto.ClubResponse, error) {
	creator := dto.UserSummary{ID: club.CreatorID}
	user, err := repos.UserRepository.GetByID(ctx, club.CreatorID)
	switch {
	case err == nil:
		creator = userSummary(user)
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, err
	}

	members, err := repos.ClubRepository.CountMembers(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	isMember, err := repos.ClubRepository.IsMember(ctx, club.ID, viewerID)
	if err != nil {
		return nil, err
	}
	isAdmin, err := authz.IsClubAdmin(ctx, repos, club, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.ClubResponse{
		ID:           club.ID,
		Name:         club.Name,
		Description:  club.Description,
		Creator:      creator,
		MembersCount: members,
		IsMember:     isMember,
		IsAdmin:      isAdmin,
		CreatedAt:    club.CreatedAt,
	}, nil
}
