// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
)

// =============================================================================
// SQLITE SNAPSHOTS
// =============================================================================

// SQLiteDB is a snapshot database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the snapshot database at path.
func OpenSQLite(path string) (*SQLiteDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteDB{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Import replaces the database contents with snap in one transaction.
func (s *SQLiteDB) Import(ctx context.Context, snap *model.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, clearTables); err != nil {
		return fmt.Errorf("failed to clear snapshot tables: %w", err)
	}

	meta := map[string]string{
		"schema_version":      strconv.Itoa(SchemaVersion),
		"version":             snap.Version,
		"selected_channel_id": snap.SelectedChannelID,
	}
	for k, v := range meta {
		if _, err = tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write metadata %s: %w", k, err)
		}
	}

	for _, g := range snap.Guilds {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO guilds (id, name, owner_id) VALUES (?, ?, ?)`,
			g.ID, g.Name, g.OwnerID); err != nil {
			return fmt.Errorf("failed to insert guild %s: %w", g.ID, err)
		}
		for key, r := range g.Roles {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO roles (guild_id, id, name, permissions, color, position) VALUES (?, ?, ?, ?, ?, ?)`,
				g.ID, key, r.Name, int64(r.Permissions), r.Color, r.Position); err != nil {
				return fmt.Errorf("failed to insert role %s/%s: %w", g.ID, key, err)
			}
		}
	}

	for _, m := range snap.Members {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO members (guild_id, user_id, nick, color_string) VALUES (?, ?, ?, ?)`,
			m.GuildID, m.UserID, m.Nick, m.ColorString); err != nil {
			return fmt.Errorf("failed to insert member %s/%s: %w", m.GuildID, m.UserID, err)
		}
		for i, roleID := range m.Roles {
			if _, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO member_roles (guild_id, user_id, role_id, ord) VALUES (?, ?, ?, ?)`,
				m.GuildID, m.UserID, roleID, i); err != nil {
				return fmt.Errorf("failed to insert member role: %w", err)
			}
		}
	}

	for _, c := range snap.Channels {
		recipients, mErr := json.Marshal(c.Recipients)
		if mErr != nil {
			err = mErr
			return fmt.Errorf("failed to encode recipients: %w", err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO channels (id, type, guild_id, owner_id, name, recipients) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, int(c.Type), c.GuildID, c.OwnerID, c.Name, string(recipients)); err != nil {
			return fmt.Errorf("failed to insert channel %s: %w", c.ID, err)
		}
	}

	for _, u := range snap.Users {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, username, bot) VALUES (?, ?, ?)`,
			u.ID, u.Username, u.Bot); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}

	for _, msg := range snap.Messages {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO messages (id, channel_id, author_id, content, timestamp) VALUES (?, ?, ?, ?, ?)`,
			msg.ID, msg.ChannelID, msg.AuthorID, msg.Content, msg.Timestamp.UnixNano()); err != nil {
			return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// Load reads the whole database into an indexed snapshot.
func (s *SQLiteDB) Load(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{}

	meta, err := s.loadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	snap.Version = meta["version"]
	snap.SelectedChannelID = meta["selected_channel_id"]

	if snap.Guilds, err = s.loadGuilds(ctx); err != nil {
		return nil, err
	}
	if snap.Members, err = s.loadMembers(ctx); err != nil {
		return nil, err
	}
	if snap.Channels, err = s.loadChannels(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.loadUsers(ctx); err != nil {
		return nil, err
	}
	if snap.Messages, err = s.loadMessages(ctx); err != nil {
		return nil, err
	}

	snap.Index()
	return snap, nil
}

func (s *SQLiteDB) loadMetadata(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func (s *SQLiteDB) loadGuilds(ctx context.Context) ([]model.Guild, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, owner_id FROM guilds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query guilds: %w", err)
	}
	var guilds []model.Guild
	index := make(map[string]int)
	for rows.Next() {
		var g model.Guild
		if err := rows.Scan(&g.ID, &g.Name, &g.OwnerID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan guild: %w", err)
		}
		g.Roles = make(map[string]model.Role)
		index[g.ID] = len(guilds)
		guilds = append(guilds, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roleRows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, id, name, permissions, color, position FROM roles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var guildID string
		var perms int64
		var r model.Role
		if err := roleRows.Scan(&guildID, &r.ID, &r.Name, &perms, &r.Color, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		r.Permissions = permission.Permission(perms)
		if i, ok := index[guildID]; ok {
			guilds[i].Roles[r.ID] = r
		}
	}
	return guilds, roleRows.Err()
}

func (s *SQLiteDB) loadMembers(ctx context.Context) ([]model.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, user_id, nick, color_string FROM members ORDER BY guild_id, user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	type key struct{ guild, user string }
	var members []model.Member
	index := make(map[key]int)
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.GuildID, &m.UserID, &m.Nick, &m.ColorString); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		index[key{m.GuildID, m.UserID}] = len(members)
		members = append(members, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roleRows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, user_id, role_id FROM member_roles ORDER BY guild_id, user_id, ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to query member roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var guildID, userID, roleID string
		if err := roleRows.Scan(&guildID, &userID, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan member role: %w", err)
		}
		if i, ok := index[key{guildID, userID}]; ok {
			members[i].Roles = append(members[i].Roles, roleID)
		}
	}
	return members, roleRows.Err()
}

func (s *SQLiteDB) loadChannels(ctx context.Context) ([]model.Channel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, guild_id, owner_id, name, recipients FROM channels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var c model.Channel
		var typ int
		var recipients string
		if err := rows.Scan(&c.ID, &typ, &c.GuildID, &c.OwnerID, &c.Name, &recipients); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		c.Type = model.ChannelType(typ)
		if err := json.Unmarshal([]byte(recipients), &c.Recipients); err != nil {
			return nil, fmt.Errorf("channel %s: bad recipients: %w", c.ID, err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

func (s *SQLiteDB) loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, bot FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Bot); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteDB) loadMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, channel_id, author_id, content, timestamp FROM messages ORDER BY timestamp, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		var ts int64
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.AuthorID, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Timestamp = time.Unix(0, ts).UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// =============================================================================
// SQLITE SOURCE
// =============================================================================

// SQLiteSource reads snapshots from a database built by Import.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource creates a source reading the database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Path implements Source.
func (s *SQLiteSource) Path() string {
	return s.path
}

// Load implements Source. The database is opened only for the duration of
// the read.
func (s *SQLiteSource) Load(ctx context.Context) (*model.Snapshot, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, s.path)
		}
		return nil, err
	}
	db, err := OpenSQLite(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Load(ctx)
}
