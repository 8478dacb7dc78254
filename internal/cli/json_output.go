// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write outputs the indented JSON response to w.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// ClassifyData is returned by the classify command.
type ClassifyData struct {
	UserID       string   `json:"user_id"`
	GuildID      string   `json:"guild_id,omitempty"`
	ChannelID    string   `json:"channel_id,omitempty"`
	Tier         string   `json:"tier"`
	Badge        string   `json:"badge,omitempty"`
	Color        string   `json:"color,omitempty"`
	IsOwner      bool     `json:"is_owner"`
	IsGroupOwner bool     `json:"is_group_owner"`
	Permissions  string   `json:"permissions"`
	Names        []string `json:"permission_names"`
}

// PermissionsData is returned by the permissions command.
type PermissionsData struct {
	UserID  string   `json:"user_id"`
	GuildID string   `json:"guild_id"`
	Value   string   `json:"value"`
	Names   []string `json:"names"`
	// Roles lists the member's role names, highest position first. The base
	// role comes last.
	Roles []string `json:"roles"`
}

// RenderData is returned by the render command.
type RenderData struct {
	ChannelID string      `json:"channel_id"`
	View      string      `json:"view"`
	Rows      []RenderRow `json:"rows"`
}

// RenderRow is one decorated message header or member row.
type RenderRow struct {
	ID    string   `json:"id"`
	Parts []string `json:"parts"`
	Badge string   `json:"badge,omitempty"`
	Class string   `json:"class,omitempty"`
}

// ToggleData is returned by the toggle command.
type ToggleData struct {
	DisplayMessages bool   `json:"display_messages"`
	DisplayMembers  bool   `json:"display_members"`
	ConfigPath      string `json:"config_path"`
}

// ImportData is returned by the import command.
type ImportData struct {
	Source   string `json:"source"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Guilds   int    `json:"guilds"`
	Members  int    `json:"members"`
	Channels int    `json:"channels"`
	Messages int    `json:"messages"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// ConfigData is returned by the config command.
type ConfigData struct {
	Path   string      `json:"path"`
	Key    string      `json:"key,omitempty"`
	Value  interface{} `json:"value,omitempty"`
	Config interface{} `json:"config,omitempty"`
}
