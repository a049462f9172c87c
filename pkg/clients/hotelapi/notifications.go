package hotelapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// NotificationResource reads and acknowledges activity notifications.
type NotificationResource struct {
	c *Client
}

func (n *NotificationResource) List(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification
	req := n.c.request(ctx).SetResult(&items)
	if err := n.c.execute(req, http.MethodGet, "/notifications"); err != nil {
		return nil, err
	}
	return items, nil
}

func (n *NotificationResource) MarkRead(ctx context.Context, id int64) error {
	return n.c.execute(n.c.request(ctx), http.MethodPut, fmt.Sprintf("/notifications/%d/read", id))
}

func (n *NotificationResource) Delete(ctx context.Context, id int64) error {
	return n.c.execute(n.c.request(ctx), http.MethodDelete, fmt.Sprintf("/notifications/%d", id))
}
