// Package userdir resolves participant profiles from the user directory
// service. The inbox uses it to decorate conversation partners with display
// names.
package userdir

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/config"
	"worklink/services/messaging-api/internal/domain/user"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Client is an HTTP client for the user directory service.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ user.Directory = (*Client)(nil)

type profileResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// NewClient builds a directory client against the configured base URL.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.UserDirectoryURL, "/")).
		SetTimeout(cfg.UserDirectoryTimeout).
		SetHeader("User-Agent", "worklink-messaging-api/1.0").
		SetRetryCount(0)

	return &Client{
		http: httpClient,
		log:  log.With().Str("component", "userdir-client").Logger(),
	}
}

// Resolve fetches the profile for a participant identifier.
func (c *Client) Resolve(ctx context.Context, participantID string) (*user.Profile, error) {
	var res profileResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", participantID).
		SetResult(&res).
		Get("/v1/users/{id}")
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"user directory request failed",
			err,
			"userdir-request-error",
		)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("participant not found: %s", participantID),
			nil,
			"userdir-profile-not-found",
		)
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("user directory error (status %d)", resp.StatusCode()),
			nil,
			"userdir-status-error",
		)
	}

	return &user.Profile{
		ID:          res.ID,
		DisplayName: res.DisplayName,
		Role:        res.Role,
	}, nil
}
