// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/morganforge/ownertag/internal/config"
	"github.com/morganforge/ownertag/internal/logging"
	"github.com/morganforge/ownertag/internal/storage"
)

// Env carries what every command needs: output streams, the loaded
// configuration and a logger.
type Env struct {
	Out io.Writer
	Err io.Writer

	Config *config.Config
	// ConfigPath is where config changes are saved.
	ConfigPath string
	// SnapshotPath is the --snapshot override. It is never saved.
	SnapshotPath string
	Logger       *slog.Logger
	JSON         bool

	closeLog func() error
}

// NewEnv loads configuration and logging for a command.
func NewEnv(args Args, stdout, stderr io.Writer) (*Env, error) {
	cfg, path, err := LoadConfig(args.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log, logging.TargetStderr, args.Verbose)
	if err != nil {
		return nil, err
	}

	return &Env{
		Out:        stdout,
		Err:        stderr,
		Config:     cfg,
		ConfigPath:   path,
		SnapshotPath: args.SnapshotPath,
		Logger:       logger,
		JSON:         args.JSON,
		closeLog:     closeLog,
	}, nil
}

// LoadConfig loads the config at path, or the default location when path is
// empty. It returns the path changes should be written to.
func LoadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		return cfg, path, err
	}

	path, err := config.ResolvePath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// SnapshotSource builds the snapshot source from the config. A --snapshot
// path replaces the configured one and its format comes from the extension.
func SnapshotSource(cfg *config.Config, override string) (storage.Source, error) {
	if override != "" {
		return storage.NewSource(override, "")
	}
	return storage.NewSource(cfg.Snapshot.Path, storage.Format(cfg.Snapshot.Format))
}

// OpenStore loads the configured snapshot.
func (e *Env) OpenStore(ctx context.Context) (*storage.Store, error) {
	src, err := SnapshotSource(e.Config, e.SnapshotPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, src, e.Logger)
}

// UpdateConfig applies fn to the config file at ConfigPath and saves it,
// then applies fn to the loaded Config as well. Overrides from flags and the
// environment stay out of the file.
func (e *Env) UpdateConfig(fn func(*config.Config) error) error {
	if _, err := config.Update(e.ConfigPath, fn); err != nil {
		var verrs config.ValidateErrors
		var verr *ValidationError
		if errors.As(err, &verrs) || errors.As(err, &verr) {
			return err
		}
		return NewCommandError("config", "save", "could not write "+e.ConfigPath, err)
	}
	if err := fn(e.Config); err != nil {
		return err
	}
	e.Logger.Debug("config saved", "path", e.ConfigPath)
	return nil
}

// Close releases the log output.
func (e *Env) Close() error {
	if e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}
