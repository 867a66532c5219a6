// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package models

// AuthResponse is the body returned by signup and login: the public view of
// the account plus the freshly issued bearer token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the uniform JSON error body. Fields is only populated for
// validation failures and lists the offending field names.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
