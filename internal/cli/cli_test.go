// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/ownertag/internal/config"
	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
	"github.com/morganforge/ownertag/internal/storage"
)

// =============================================================================
// FIXTURES
// =============================================================================

func writeSnapshot(t *testing.T) string {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := &model.Snapshot{
		Version:           "v1",
		SelectedChannelID: "C1",
		Guilds: []model.Guild{{
			ID:      "G1",
			Name:    "Gophers",
			OwnerID: "U1",
			Roles: map[string]model.Role{
				"G1": {ID: "G1", Name: "@everyone", Permissions: permission.SendMessages},
				"R1": {ID: "R1", Name: "Mods", Permissions: permission.KickMembers},
				"R2": {ID: "R2", Name: "Admins", Permissions: permission.Administrator},
			},
		}},
		Members: []model.Member{
			{GuildID: "G1", UserID: "U1"},
			{GuildID: "G1", UserID: "U2", Roles: []string{"R1"}, ColorString: "#3498db"},
			{GuildID: "G1", UserID: "U3", Roles: []string{"R2"}},
			{GuildID: "G1", UserID: "U4"},
		},
		Channels: []model.Channel{
			{ID: "C1", Type: model.ChannelGuildText, GuildID: "G1", Name: "general"},
			{ID: "C2", Type: model.ChannelGroupDM, OwnerID: "U4", Recipients: []string{"U4", "U2"}},
		},
		Users: []model.User{
			{ID: "U1", Username: "alice"},
			{ID: "U2", Username: "bob"},
			{ID: "U3", Username: "carol"},
			{ID: "U4", Username: "dave"},
		},
		Messages: []model.Message{
			{ID: "M1", ChannelID: "C1", AuthorID: "U1", Content: "hello", Timestamp: base},
			{ID: "M2", ChannelID: "C1", AuthorID: "U4", Content: "hi", Timestamp: base.Add(time.Minute)},
			{ID: "M3", ChannelID: "C2", AuthorID: "U4", Content: "group plans", Timestamp: base.Add(2 * time.Minute)},
		},
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, storage.SaveJSON(path, snap))
	return path
}

// run executes argv with an isolated config home and returns the exit code
// and both output streams.
func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd, args := Parse(argv)
	code := Execute(cmd, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("OWNERTAG_HOME", t.TempDir())
	t.Setenv("OWNERTAG_SNAPSHOT", "")
	t.Setenv("OWNERTAG_DISPLAY_MESSAGES", "")
	t.Setenv("OWNERTAG_DISPLAY_MEMBERS", "")
}

func decode[T any](t *testing.T, out string) (JSONResponse, T) {
	t.Helper()
	var raw struct {
		JSONResponse
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	return raw.JSONResponse, raw.Data
}

// =============================================================================
// PARSING
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		argv []string
		cmd  Command
	}{
		{nil, CmdTUI},
		{[]string{"--verbose"}, CmdTUI},
		{[]string{"classify", "U1"}, CmdClassify},
		{[]string{"perms", "U1"}, CmdPermissions},
		{[]string{"render", "members"}, CmdRender},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"toggle", "members"}, CmdToggle},
		{[]string{"import", "a", "b"}, CmdImport},
		{[]string{"version"}, CmdVersion},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := Parse(tt.argv)
		assert.Equal(t, tt.cmd, cmd, "argv %v", tt.argv)
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"--snapshot", "s.json", "classify", "--json", "U1", "--config=c.toml", "-v"})
	assert.Equal(t, CmdClassify, cmd)
	assert.Equal(t, "s.json", args.SnapshotPath)
	assert.Equal(t, "c.toml", args.ConfigPath)
	assert.True(t, args.JSON)
	assert.True(t, args.Verbose)
	assert.Equal(t, []string{"U1"}, args.Raw)
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"members", "--channel", "C1", "--width=40", "--all", "--", "--raw"})
	assert.Equal(t, "members", p.Subcommand())
	assert.Equal(t, "C1", p.Flag("channel"))
	n, err := p.FlagInt("width")
	require.NoError(t, err)
	assert.Equal(t, 40, n)
	assert.True(t, p.BoolFlag("all"))
	assert.Equal(t, "--raw", p.Positional(1))
	assert.Equal(t, "", p.Positional(5))
	assert.Equal(t, "fallback", p.FlagOrDefault("missing", "fallback"))
}

func TestArgParser_KnownBoolFlags(t *testing.T) {
	p := NewArgParser([]string{"--force", "U1"}, "force")
	assert.True(t, p.BoolFlag("force"))
	assert.Equal(t, "U1", p.Positional(0))

	p = NewArgParser([]string{"--force", "U1"})
	assert.Equal(t, "U1", p.Flag("force"))
	assert.Equal(t, 0, p.PositionalCount())
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"on", "YES", "true", "1", "y"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "No", "false", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneralError},
		{ErrMissingArgument("user", ""), ExitUsageError},
		{ErrNotFound("guild", "G9"), ExitNotFoundError},
		{storage.ErrNoSnapshot, ExitNotFoundError},
		{config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}, ExitConfigError},
		{NewCommandError("import", "write", "disk full", errors.New("io")), ExitGeneralError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, GetExitCode(tt.err), "%v", tt.err)
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "classify", ErrNotFound("channel", "C9"), true)

	resp, details := decode[map[string]interface{}](t, buf.String())
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "C9")
	assert.Equal(t, "not_found_error", details["error_type"])
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestClassify_Tiers(t *testing.T) {
	isolate(t)
	snap := writeSnapshot(t)

	tests := []struct {
		user  string
		tier  string
		badge string
	}{
		{"U1", "OWNER", "Owner"},
		{"U2", "MANAGEMENT", "Mod"},
		{"U3", "ADMIN", "Admin"},
		{"U4", "NONE", ""},
	}
	for _, tt := range tests {
		code, out, errOut := run(t, "--snapshot", snap, "--json", "classify", tt.user, "--guild", "G1")
		require.Equal(t, ExitSuccess, code, errOut)

		resp, data := decode[ClassifyData](t, out)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.tier, data.Tier, tt.user)
		assert.Equal(t, tt.badge, data.Badge, tt.user)
	}
}

func TestClassify_OwnerHasAllPermissions(t *testing.T) {
	isolate(t)
	code, out, _ := run(t, "--snapshot", writeSnapshot(t), "--json", "classify", "U1")
	require.Equal(t, ExitSuccess, code)

	_, data := decode[ClassifyData](t, out)
	assert.True(t, data.IsOwner)
	assert.Equal(t, "C1", data.ChannelID)
	assert.ElementsMatch(t, permission.All.Names(), data.Names)
}

func TestClassify_GroupConversation(t *testing.T) {
	isolate(t)
	snap := writeSnapshot(t)

	_, out, _ := run(t, "--snapshot", snap, "--json", "classify", "U4", "--channel", "C2")
	_, data := decode[ClassifyData](t, out)
	assert.Equal(t, "OWNER", data.Tier)
	assert.True(t, data.IsGroupOwner)

	_, out, _ = run(t, "--snapshot", snap, "--json", "classify", "U2", "--channel", "C2")
	_, data = decode[ClassifyData](t, out)
	assert.Equal(t, "NONE", data.Tier)
}

func TestClassify_Errors(t *testing.T) {
	isolate(t)
	snap := writeSnapshot(t)

	code, _, _ := run(t, "--snapshot", snap, "classify")
	assert.Equal(t, ExitUsageError, code)

	code, _, _ = run(t, "--snapshot", snap, "classify", "U1", "--guild", "G404")
	assert.Equal(t, ExitNotFoundError, code)

	code, _, _ = run(t, "--snapshot", filepath.Join(t.TempDir(), "missing.json"), "classify", "U1")
	assert.Equal(t, ExitNotFoundError, code)
}

func TestPermissions(t *testing.T) {
	isolate(t)
	code, out, errOut := run(t, "--snapshot", writeSnapshot(t), "--json", "permissions", "U2", "--guild", "G1")
	require.Equal(t, ExitSuccess, code, errOut)

	_, data := decode[PermissionsData](t, out)
	assert.ElementsMatch(t, []string{"KICK_MEMBERS", "SEND_MESSAGES"}, data.Names)
	assert.Equal(t, []string{"Mods", "@everyone"}, data.Roles)

	_, out, _ = run(t, "--snapshot", writeSnapshot(t), "--json", "permissions", "U9", "--guild", "G1")
	_, data = decode[PermissionsData](t, out)
	assert.Equal(t, []string{"@everyone"}, data.Roles, "non-members still get the base role")
}

func TestRenderMembers_JSON(t *testing.T) {
	isolate(t)
	code, out, errOut := run(t, "--snapshot", writeSnapshot(t), "--json", "render", "members")
	require.Equal(t, ExitSuccess, code, errOut)

	_, data := decode[RenderData](t, out)
	require.Len(t, data.Rows, 4)
	ids := make([]string, len(data.Rows))
	for i, r := range data.Rows {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"U1", "U2", "U3", "U4"}, ids, "sorted by display name")
	assert.Equal(t, "Owner", data.Rows[0].Badge)
	assert.Equal(t, "ownertag-list", data.Rows[0].Class)
	assert.Empty(t, data.Rows[3].Badge)
}

func TestRenderMessages_JSON(t *testing.T) {
	isolate(t)
	code, out, errOut := run(t, "--snapshot", writeSnapshot(t), "--json", "render", "messages")
	require.Equal(t, ExitSuccess, code, errOut)

	_, data := decode[RenderData](t, out)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "M1", data.Rows[0].ID)
	assert.Equal(t, "Owner", data.Rows[0].Badge)
	assert.Equal(t, "ownertag", data.Rows[0].Class)
	assert.Len(t, data.Rows[0].Parts, 3, "name, badge, timestamp")
	assert.Len(t, data.Rows[1].Parts, 2, "no badge for a plain member")
}

func TestRenderMessages_JSONUsesRenderedChannel(t *testing.T) {
	isolate(t)
	snap := writeSnapshot(t)

	// The snapshot selects C1; U4 owns the group conversation C2 only.
	code, out, errOut := run(t, "--snapshot", snap, "--json", "render", "messages", "--channel", "C2")
	require.Equal(t, ExitSuccess, code, errOut)
	_, data := decode[RenderData](t, out)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "M3", data.Rows[0].ID)
	assert.Equal(t, "Owner", data.Rows[0].Badge)
	assert.Equal(t, "ownertag", data.Rows[0].Class)
	assert.Len(t, data.Rows[0].Parts, 3, "name, badge, timestamp")

	code, text, errOut := run(t, "--snapshot", snap, "render", "messages", "--channel", "C2")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, text, "Owner", "text and JSON output agree")
}

func TestRender_RejectsUnknownView(t *testing.T) {
	isolate(t)
	code, _, _ := run(t, "--snapshot", writeSnapshot(t), "render", "roles")
	assert.Equal(t, ExitUsageError, code)
}

func TestToggle_PersistsAndHidesBadges(t *testing.T) {
	isolate(t)
	snap := writeSnapshot(t)

	code, out, errOut := run(t, "--json", "toggle", "members", "off")
	require.Equal(t, ExitSuccess, code, errOut)
	_, data := decode[ToggleData](t, out)
	assert.False(t, data.DisplayMembers)
	assert.True(t, data.DisplayMessages)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Display.Members)

	_, out, _ = run(t, "--snapshot", snap, "--json", "render", "members")
	_, rendered := decode[RenderData](t, out)
	for _, r := range rendered.Rows {
		assert.Empty(t, r.Badge)
	}

	// flip back without an explicit state
	_, out, _ = run(t, "--json", "toggle", "members")
	_, data = decode[ToggleData](t, out)
	assert.True(t, data.DisplayMembers)
}

func TestToggle_SnapshotFlagNotPersisted(t *testing.T) {
	isolate(t)
	path, err := config.ConfigPathTOML()
	require.NoError(t, err)
	require.NoError(t, config.SaveTo(config.Default(), path))
	before, err := config.LoadFromPath(path)
	require.NoError(t, err)

	snap := writeSnapshot(t)
	code, _, errOut := run(t, "--snapshot", snap, "toggle", "members", "off")
	require.Equal(t, ExitSuccess, code, errOut)

	after, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.False(t, after.Display.Members)
	assert.Equal(t, before.Snapshot.Path, after.Snapshot.Path)
	assert.Equal(t, before.Snapshot.Format, after.Snapshot.Format)
	assert.NotEqual(t, snap, after.Snapshot.Path)
}

func TestToggle_EnvOverrideNotPersisted(t *testing.T) {
	isolate(t)
	t.Setenv("OWNERTAG_THEME", "light")

	code, _, errOut := run(t, "toggle", "messages", "off")
	require.Equal(t, ExitSuccess, code, errOut)

	path, err := config.ConfigPathTOML()
	require.NoError(t, err)
	t.Setenv("OWNERTAG_THEME", "")
	saved, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.False(t, saved.Display.Messages)
	assert.Equal(t, config.Default().UI.Theme, saved.UI.Theme)
}

func TestToggle_WritesLoadedJSONConfig(t *testing.T) {
	isolate(t)
	jsonPath, err := config.ConfigPathJSON()
	require.NoError(t, err)
	require.NoError(t, config.SaveTo(config.Default(), jsonPath))

	code, out, errOut := run(t, "--json", "toggle", "members", "off")
	require.Equal(t, ExitSuccess, code, errOut)
	_, data := decode[ToggleData](t, out)
	assert.Equal(t, jsonPath, data.ConfigPath)

	tomlPath, err := config.ConfigPathTOML()
	require.NoError(t, err)
	assert.NoFileExists(t, tomlPath)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Display.Members)
}

func TestConfig_SetAndGet(t *testing.T) {
	isolate(t)

	code, _, errOut := run(t, "config", "set", "ui.theme", "dark")
	require.Equal(t, ExitSuccess, code, errOut)

	code, out, _ := run(t, "config", "get", "ui.theme")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "dark\n", out)

	code, _, _ = run(t, "config", "set", "ui.theme", "neon")
	assert.Equal(t, ExitConfigError, code)

	code, _, _ = run(t, "config", "get", "nope.key")
	assert.Equal(t, ExitUsageError, code)
}

func TestImport(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "snapshot.db")

	code, out, errOut := run(t, "--json", "import", writeSnapshot(t), db)
	require.Equal(t, ExitSuccess, code, errOut)
	_, data := decode[ImportData](t, out)
	assert.Equal(t, 4, data.Members)

	snap, err := storage.NewSQLiteSource(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "U1", snap.Guild("G1").OwnerID)

	code, out, errOut = run(t, "--snapshot", db, "--json", "classify", "U3", "--guild", "G1")
	require.Equal(t, ExitSuccess, code, errOut)
	_, classified := decode[ClassifyData](t, out)
	assert.Equal(t, "ADMIN", classified.Tier)
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "help")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "ownertag classify")

	code, _, errOut := run(t, "frobnicate")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, errOut, "Unknown command: frobnicate")

	code, out, _ = run(t, "--json", "version")
	assert.Equal(t, ExitSuccess, code)
	_, v := decode[VersionData](t, out)
	assert.Equal(t, Version, v.Version)
}
