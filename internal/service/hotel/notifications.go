package hotel

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// NotificationFeed is the notification list with its unread counter.
type NotificationFeed struct {
	Items  []models.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

// NotificationDetail is a notification with the name of the record it is about.
type NotificationDetail struct {
	models.Notification
	EntityName string `json:"entity_name,omitempty"`
}

// Notifications lists notifications.
func (s *Service) Notifications(ctx context.Context) (*NotificationFeed, error) {
	items, err := s.api.Notifications.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	feed := &NotificationFeed{Items: items}
	if feed.Items == nil {
		feed.Items = []models.Notification{}
	}
	for _, n := range items {
		if !n.Read() {
			feed.Unread++
		}
	}
	return feed, nil
}

// ViewNotification marks the notification read and resolves its entity name.
// The entity lookup is best effort: a failure only leaves the name empty.
func (s *Service) ViewNotification(ctx context.Context, id int64) (*NotificationDetail, error) {
	feed, err := s.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	var found *models.Notification
	for i := range feed.Items {
		if feed.Items[i].ID == id {
			found = &feed.Items[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: notification %d", ErrNotFound, id)
	}

	if !found.Read() {
		if err := s.api.Notifications.MarkRead(ctx, id); err != nil {
			return nil, fmt.Errorf("mark notification %d read: %w", id, err)
		}
		found.IsRead = 1
	}

	detail := &NotificationDetail{Notification: *found}
	name, err := s.entityName(ctx, found.EntityType, found.EntityID)
	if err != nil {
		s.logger.Debug("notification entity lookup failed",
			zap.Int64("notification_id", id),
			zap.String("entity_type", found.EntityType),
			zap.Error(err))
	}
	detail.EntityName = name
	return detail, nil
}

// DeleteNotification removes a notification.
func (s *Service) DeleteNotification(ctx context.Context, id int64) error {
	if err := s.api.Notifications.Delete(ctx, id); err != nil {
		return notFound(fmt.Errorf("delete notification %d: %w", id, err))
	}
	return nil
}

func (s *Service) entityName(ctx context.Context, entityType string, id int64) (string, error) {
	if entityType == "" || id == 0 {
		return "", nil
	}
	kind := strings.ToLower(entityType)
	switch {
	case strings.Contains(kind, "reservation"):
		r, err := s.GetReservation(ctx, id)
		if err != nil {
			return "", err
		}
		return r.ClientName, nil
	case strings.Contains(kind, "chambre"), strings.Contains(kind, "room"):
		room, err := s.Rooms.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return "Chambre " + room.Number, nil
	case strings.Contains(kind, "user"), strings.Contains(kind, "utilisateur"):
		u, err := s.GetUser(ctx, id)
		if err != nil {
			return "", err
		}
		return u.FullName(), nil
	}
	return "", nil
}
