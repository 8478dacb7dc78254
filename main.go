// ownertag - permission badges for a terminal chat viewer.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/ownertag/internal/cli"
	"github.com/morganforge/ownertag/internal/config"
	"github.com/morganforge/ownertag/internal/logging"
	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/storage"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/chat"
	"github.com/morganforge/ownertag/internal/ui/components"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	if cmd == cli.CmdTUI {
		if err := runTUI(args); err != nil {
			cli.DisplayError(os.Stderr, "tui", err, false)
			os.Exit(cli.GetExitCode(err))
		}
		return
	}
	os.Exit(cli.Execute(cmd, args, os.Stdout, os.Stderr))
}

// runTUI starts the viewer. Logs go to a file because the viewer owns the
// terminal.
func runTUI(args cli.Args) error {
	cfg, cfgPath, err := cli.LoadConfig(args.ConfigPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log, logging.TargetFile, args.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	src, err := cli.SnapshotSource(cfg, args.SnapshotPath)
	if err != nil {
		return err
	}
	store, err := storage.Open(context.Background(), src, logger)
	if err != nil {
		return err
	}

	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		return err
	}
	theme := styles.NewTheme(mode)

	var markdown *components.Markdown
	if cfg.UI.Markdown {
		style := ""
		if mode != styles.ModeAuto {
			style = string(mode)
		}
		markdown = components.NewMarkdown(cli.DefaultTerminalWidth, style)
	}

	cache := tag.NewCache()
	resolver := tag.NewResolver(store, tag.WithCache(cache), tag.WithLogger(logger))

	// Toggles are saved from command goroutines; keep writes ordered.
	var saveMu sync.Mutex
	m := chat.New(chat.Options{
		Theme:    theme,
		Store:    store,
		Resolver: resolver,
		Markdown: markdown,
		Settings: cfg.DisplaySettings(),
		SaveSettings: func(s tag.Settings) error {
			saveMu.Lock()
			defer saveMu.Unlock()
			_, err := config.Update(cfgPath, func(c *config.Config) error {
				c.SetDisplaySettings(s)
				return nil
			})
			return err
		},
		MemberListWidth: cfg.UI.MemberListWidth,
		Locale:          cfg.UI.Locale,
		Logger:          logger,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	store.OnReload(func(s *model.Snapshot) {
		p.Send(chat.SnapshotReloadedMsg{Version: s.Version})
	})

	if cfg.Snapshot.Watch {
		w, err := storage.NewWatcher(store, time.Duration(cfg.Snapshot.DebounceMs)*time.Millisecond)
		if err == nil {
			err = w.Watch()
		}
		if err != nil {
			logger.Warn("snapshot watching disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	logger.Info("viewer started",
		"snapshot", src.Path(),
		"display_messages", cfg.Display.Messages,
		"display_members", cfg.Display.Members)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	stats := cache.Stats()
	logger.Debug("classification cache",
		"version", stats.Version,
		"entries", stats.Entries,
		"hits", stats.Hits,
		"misses", stats.Misses)
	return nil
}
