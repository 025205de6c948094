// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the companion server.
//
// Every request goes through Client.Call, which attaches the bearer
// credential, encodes the body, and turns non-2xx responses into *Error
// values carrying the server's message.
//
// # Key Types
//
//   - Client: Base URL, credential source and HTTP transport
//   - Options: Method, body and query of a single call
//   - Form: Multipart body for file uploads
//   - Error: A failed call with HTTP status and display message
//
// # Usage
//
//	client := api.New(cfg.API.BaseURL, store, logger)
//	token, err := client.Login(ctx, email, password)
//	profile, err := client.CurrentUser(ctx)
//
// Errors carry the server message verbatim so they can be shown to the user:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
//	    // credential rejected
//	}
package api
