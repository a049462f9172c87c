package hotelapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/config"
	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx so that calls made on
// its behalf are authenticated as that caller.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// APIError is a non-2xx answer from the hotel API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hotel api error: status=%d, message=%s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
}

// Client is a resty-backed client for the hotel REST API.
type Client struct {
	httpClient *resty.Client
	token      string
	logger     *zap.Logger

	Rooms         *Resource[models.Room]
	RoomStatuses  *Resource[models.RoomStatus]
	Reservations  *Resource[models.Reservation]
	Purchases     *Resource[models.Purchase]
	Units         *Resource[models.Unit]
	Profiles      *Resource[models.Profile]
	Users         *UserResource
	Notifications *NotificationResource
}

// NewClient builds a hotel API client from configuration.
func NewClient(cfg config.HotelAPIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	c := &Client{
		httpClient: restyClient,
		token:      cfg.Token,
		logger:     logger,
	}
	c.Rooms = newResource[models.Room](c, "/chambres")
	c.RoomStatuses = newResource[models.RoomStatus](c, "/status-chambres")
	c.Reservations = newResource[models.Reservation](c, "/reservations")
	c.Purchases = newResource[models.Purchase](c, "/achats")
	c.Units = newResource[models.Unit](c, "/uniters")
	c.Profiles = newResource[models.Profile](c, "/profils")
	c.Users = &UserResource{Resource: newResource[models.User](c, "/utilisateurs")}
	c.Notifications = &NotificationResource{c: c}
	return c
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	result := new(models.AuthResponse)
	req := c.request(ctx).SetBody(creds).SetResult(result)
	if err := c.execute(req, http.MethodPost, "/auth/login"); err != nil {
		return nil, err
	}
	return result, nil
}

// Authenticated reports whether calls made with ctx carry a bearer token,
// either the caller's or the service token.
func (c *Client) Authenticated(ctx context.Context) bool {
	return TokenFrom(ctx) != "" || c.token != ""
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(new(errorBody))

	token := TokenFrom(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (c *Client) execute(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.logger.Warn("hotel api rejected credentials, token may have expired", zap.String("path", path))
	} else {
		c.logger.Debug("hotel api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message))
	}
	return apiErr
}
