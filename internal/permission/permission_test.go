// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package permission

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBitsAreDistinct(t *testing.T) {
	seen := make(map[Permission]string)
	for _, f := range table {
		if other, ok := seen[f.bit]; ok {
			t.Fatalf("%s and %s share bit %d", f.name, other, f.bit)
		}
		seen[f.bit] = f.name
	}
	assert.Len(t, Defined(), len(table))
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Permission
	}{
		{"ADMINISTRATOR", Administrator},
		{"kick_members", KickMembers},
		{"ban-members", BanMembers},
		{" MANAGE_MESSAGES ", ManageMessages},
	}
	for _, tc := range tests {
		got, err := ParseName(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseName_RejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "allPermissions", "SUPERUSER", "KICK"} {
		_, err := ParseName(name)
		assert.True(t, errors.Is(err, ErrUnknownPermission), "%q should be rejected", name)
	}

	_, err := ParseNames([]string{"KICK_MEMBERS", "FLY"})
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestParse(t *testing.T) {
	p, err := Parse("8")
	require.NoError(t, err)
	assert.Equal(t, Administrator, p)

	p, err = Parse("KICK_MEMBERS|BAN_MEMBERS")
	require.NoError(t, err)
	assert.Equal(t, KickMembers|BanMembers, p)

	p, err = Parse("")
	require.NoError(t, err)
	assert.Zero(t, p)

	_, err = Parse("KICK_MEMBERS,NOPE")
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestNamesAndString(t *testing.T) {
	p := ManageMessages | KickMembers
	assert.Equal(t, []string{"KICK_MEMBERS", "MANAGE_MESSAGES"}, p.Names())
	assert.Equal(t, "KICK_MEMBERS|MANAGE_MESSAGES", p.String())
	assert.Equal(t, "NONE", Permission(0).String())
	// Bit 62 is not a host permission.
	assert.Empty(t, Permission(1<<62).Names())
	assert.Equal(t, []string{"MANAGE_EVENTS"}, ManageEvents.Names())
	assert.True(t, All.Has(ManageEvents))
}

func TestHelpers(t *testing.T) {
	p := Permission(0).Add(KickMembers).Add(BanMembers)
	assert.True(t, p.Has(KickMembers|BanMembers))
	assert.False(t, p.Has(KickMembers|ManageMessages))
	assert.True(t, p.HasAny(Moderation))
	assert.Equal(t, BanMembers, p.Remove(KickMembers))
}

func TestPermissionJSON(t *testing.T) {
	var p Permission

	require.NoError(t, json.Unmarshal([]byte(`"8"`), &p))
	assert.Equal(t, Administrator, p)

	require.NoError(t, json.Unmarshal([]byte(`2`), &p))
	assert.Equal(t, KickMembers, p)

	require.NoError(t, json.Unmarshal([]byte(`["BAN_MEMBERS","manage_messages"]`), &p))
	assert.Equal(t, BanMembers|ManageMessages, p)

	assert.ErrorIs(t, json.Unmarshal([]byte(`["ROOT"]`), &p), ErrUnknownPermission)
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &p))

	out, err := json.Marshal(KickMembers | ModerateMembers)
	require.NoError(t, err)
	assert.Equal(t, `"1099511627778"`, string(out))
}
