// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/jeranaias/companion-tui/internal/model"
)

// Register creates an account. The user still has to log in afterwards.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.Profile, error) {
	var profile model.Profile
	err := c.CallJSON(ctx, "/auth/register", Options{Method: http.MethodPost, Body: reg}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login exchanges email and password for an access token using the OAuth2
// password grant. The form is posted to /auth/login with the credentials in
// the body.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", loginError(retrieveErr.Response.StatusCode, retrieveErr.Body)
		}
		return "", fmt.Errorf("login request failed: %w", err)
	}
	return token.AccessToken, nil
}

// loginError reports the server detail, or "Login failed" for anything else.
func loginError(status int, body []byte) *Error {
	var envelope errorBody
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = detailMessage(envelope.Detail)
	}
	if msg == "" {
		msg = MsgLoginFailed
	}
	return &Error{Status: status, Message: msg}
}
