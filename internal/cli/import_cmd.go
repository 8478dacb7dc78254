// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/morganforge/ownertag/internal/storage"
)

// HandleImport converts a JSON snapshot into a SQLite snapshot database,
// replacing whatever the database held before.
//
//	ownertag import <snapshot.json> <snapshot.db>
func HandleImport(env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	src, dst := p.Positional(0), p.Positional(1)
	if src == "" || dst == "" {
		return ErrMissingArgument("source and destination", "ownertag import snapshot.json snapshot.db")
	}

	snap, err := storage.LoadJSON(src)
	if err != nil {
		return err
	}

	db, err := storage.OpenSQLite(dst)
	if err != nil {
		return NewCommandError("import", "open", "could not open "+dst, err)
	}
	defer db.Close()

	if err := db.Import(context.Background(), snap); err != nil {
		return NewCommandError("import", "write", "could not write snapshot", err)
	}
	env.Logger.Info("snapshot imported", "source", src, "database", dst, "version", snap.Version)

	data := ImportData{
		Source:   src,
		Database: dst,
		Version:  snap.Version,
		Guilds:   len(snap.Guilds),
		Members:  len(snap.Members),
		Channels: len(snap.Channels),
		Messages: len(snap.Messages),
	}
	if env.JSON {
		return NewJSONResponse("import", data).Write(env.Out)
	}

	fmt.Fprintf(env.Out, "%s %s -> %s\n", SuccessStyle.Render("Imported"), src, dst)
	fmt.Fprintln(env.Out, RenderField("Guilds", strconv.Itoa(data.Guilds)))
	fmt.Fprintln(env.Out, RenderField("Members", strconv.Itoa(data.Members)))
	fmt.Fprintln(env.Out, RenderField("Channels", strconv.Itoa(data.Channels)))
	fmt.Fprintln(env.Out, RenderField("Messages", strconv.Itoa(data.Messages)))
	return nil
}
