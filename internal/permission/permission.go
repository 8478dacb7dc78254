// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package permission

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownPermission is returned when a permission name is not in the host table.
var ErrUnknownPermission = errors.New("unknown permission")

// Permission is a bitfield of host capabilities.
type Permission uint64

// Host permission bits.
const (
	CreateInstantInvite Permission = 1 << 0
	KickMembers         Permission = 1 << 1
	BanMembers          Permission = 1 << 2
	Administrator       Permission = 1 << 3
	ManageChannels      Permission = 1 << 4
	ManageGuild         Permission = 1 << 5
	AddReactions        Permission = 1 << 6
	ViewAuditLog        Permission = 1 << 7
	PrioritySpeaker     Permission = 1 << 8
	Stream              Permission = 1 << 9
	ViewChannel         Permission = 1 << 10
	SendMessages        Permission = 1 << 11
	SendTTSMessages     Permission = 1 << 12
	ManageMessages      Permission = 1 << 13
	EmbedLinks          Permission = 1 << 14
	AttachFiles         Permission = 1 << 15
	ReadMessageHistory  Permission = 1 << 16
	MentionEveryone     Permission = 1 << 17
	UseExternalEmojis   Permission = 1 << 18
	ViewGuildInsights   Permission = 1 << 19
	Connect             Permission = 1 << 20
	Speak               Permission = 1 << 21
	MuteMembers         Permission = 1 << 22
	DeafenMembers       Permission = 1 << 23
	MoveMembers         Permission = 1 << 24
	UseVAD              Permission = 1 << 25
	ChangeNickname      Permission = 1 << 26
	ManageNicknames     Permission = 1 << 27
	ManageRoles         Permission = 1 << 28
	ManageWebhooks      Permission = 1 << 29
	ManageEmojis        Permission = 1 << 30
	UseApplicationCmds  Permission = 1 << 31
	RequestToSpeak      Permission = 1 << 32
	ManageEvents        Permission = 1 << 33
	ManageThreads       Permission = 1 << 34
	CreatePublicThreads Permission = 1 << 35
	CreatePrivThreads   Permission = 1 << 36
	UseExternalStickers Permission = 1 << 37
	SendInThreads       Permission = 1 << 38
	StartActivities     Permission = 1 << 39
	ModerateMembers     Permission = 1 << 40
)

// Moderation is the set of bits that earn the MANAGEMENT tier.
const Moderation = KickMembers | BanMembers | ManageMessages

// flag pairs a host name with its bit.
type flag struct {
	name string
	bit  Permission
}

// table lists every defined bit in host order.
var table = []flag{
	{"CREATE_INSTANT_INVITE", CreateInstantInvite},
	{"KICK_MEMBERS", KickMembers},
	{"BAN_MEMBERS", BanMembers},
	{"ADMINISTRATOR", Administrator},
	{"MANAGE_CHANNELS", ManageChannels},
	{"MANAGE_GUILD", ManageGuild},
	{"ADD_REACTIONS", AddReactions},
	{"VIEW_AUDIT_LOG", ViewAuditLog},
	{"PRIORITY_SPEAKER", PrioritySpeaker},
	{"STREAM", Stream},
	{"VIEW_CHANNEL", ViewChannel},
	{"SEND_MESSAGES", SendMessages},
	{"SEND_TTS_MESSAGES", SendTTSMessages},
	{"MANAGE_MESSAGES", ManageMessages},
	{"EMBED_LINKS", EmbedLinks},
	{"ATTACH_FILES", AttachFiles},
	{"READ_MESSAGE_HISTORY", ReadMessageHistory},
	{"MENTION_EVERYONE", MentionEveryone},
	{"USE_EXTERNAL_EMOJIS", UseExternalEmojis},
	{"VIEW_GUILD_INSIGHTS", ViewGuildInsights},
	{"CONNECT", Connect},
	{"SPEAK", Speak},
	{"MUTE_MEMBERS", MuteMembers},
	{"DEAFEN_MEMBERS", DeafenMembers},
	{"MOVE_MEMBERS", MoveMembers},
	{"USE_VAD", UseVAD},
	{"CHANGE_NICKNAME", ChangeNickname},
	{"MANAGE_NICKNAMES", ManageNicknames},
	{"MANAGE_ROLES", ManageRoles},
	{"MANAGE_WEBHOOKS", ManageWebhooks},
	{"MANAGE_EMOJIS", ManageEmojis},
	{"USE_APPLICATION_COMMANDS", UseApplicationCmds},
	{"REQUEST_TO_SPEAK", RequestToSpeak},
	{"MANAGE_EVENTS", ManageEvents},
	{"MANAGE_THREADS", ManageThreads},
	{"CREATE_PUBLIC_THREADS", CreatePublicThreads},
	{"CREATE_PRIVATE_THREADS", CreatePrivThreads},
	{"USE_EXTERNAL_STICKERS", UseExternalStickers},
	{"SEND_MESSAGES_IN_THREADS", SendInThreads},
	{"START_EMBEDDED_ACTIVITIES", StartActivities},
	{"MODERATE_MEMBERS", ModerateMembers},
}

// All is every defined permission bit.
var All = func() Permission {
	var p Permission
	for _, f := range table {
		p |= f.bit
	}
	return p
}()

var byName = func() map[string]Permission {
	m := make(map[string]Permission, len(table))
	for _, f := range table {
		m[f.name] = f.bit
	}
	return m
}()

// Has reports whether every bit of perm is set.
func (p Permission) Has(perm Permission) bool {
	return p&perm == perm
}

// HasAny reports whether at least one bit of perm is set.
func (p Permission) HasAny(perm Permission) bool {
	return p&perm != 0
}

// Add returns p with the bits of perm set.
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove returns p with the bits of perm cleared.
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// Names returns the host names of the defined bits set in p, in table order.
// Bits outside the table are ignored.
func (p Permission) Names() []string {
	names := make([]string, 0, len(table))
	for _, f := range table {
		if p&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

// String returns the set bit names joined by "|", or "NONE".
func (p Permission) String() string {
	names := p.Names()
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// Defined returns every host permission name in table order.
func Defined() []string {
	return All.Names()
}

// ParseName maps a host permission name to its bit. Matching ignores case and
// treats '-' as '_', so "kick-members" and "KICK_MEMBERS" are the same flag.
func ParseName(name string) (Permission, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	bit, ok := byName[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPermission, name)
	}
	return bit, nil
}

// ParseNames ORs the bits for every name, failing on the first unknown one.
func ParseNames(names []string) (Permission, error) {
	var p Permission
	for _, name := range names {
		bit, err := ParseName(name)
		if err != nil {
			return 0, err
		}
		p |= bit
	}
	return p, nil
}

// Parse accepts a decimal bitfield or a list of names separated by '|' or ','.
func Parse(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Permission(n), nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	return ParseNames(parts)
}

// MarshalJSON encodes the bitfield as a decimal string, the way the host
// serializes 64-bit fields.
func (p Permission) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(p), 10))
}

// UnmarshalJSON accepts a number, a decimal string, or an array of names.
func (p *Permission) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = 0
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		parsed, err := ParseNames(names)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid permission bitfield %q: %w", s, err)
		}
		*p = Permission(n)
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid permission bitfield %s: %w", data, err)
	}
	*p = Permission(n)
	return nil
}
