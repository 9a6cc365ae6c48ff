// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// APIResponse is the JSON envelope of every bridge response.
// Exactly one of Data and Error is meaningful, selected by Success.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail wraps message in a failed envelope.
func Fail(message string) APIResponse {
	return APIResponse{Error: message}
}
