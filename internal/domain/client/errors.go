package client

import "errors"

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientInactive = errors.New("client is inactive")
	ErrAPIKeyExists   = errors.New("API key already exists")
	ErrInvalidAPIKey  = errors.New("invalid API key format")
)
