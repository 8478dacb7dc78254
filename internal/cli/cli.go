// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and dispatch for ownertag.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdClassify
	CmdPermissions
	CmdRender
	CmdConfig
	CmdToggle
	CmdImport
	CmdVersion
	CmdHelp
)

// String returns the command word.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdClassify:
		return "classify"
	case CmdPermissions:
		return "permissions"
	case CmdRender:
		return "render"
	case CmdConfig:
		return "config"
	case CmdToggle:
		return "toggle"
	case CmdImport:
		return "import"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	SnapshotPath string
	ConfigPath   string
	JSON         bool
	Verbose      bool

	// Raw args after the command word
	Raw []string
}

const usageText = `ownertag - permission badges for a terminal chat viewer

Usage:
  ownertag                               Start the viewer (default)
  ownertag classify <user> [--guild G | --channel C]
                                         Show a user's badge tier
  ownertag permissions <user> --guild G  Show a user's effective permissions
  ownertag render messages [--channel C] [--width N]
                                         Print message headers with badges
  ownertag render members [--channel C] [--width N]
                                         Print the member list with badges
  ownertag config show                   Show configuration
  ownertag config get <key>              Get a value (dot notation)
  ownertag config set <key> <value>      Set a value
  ownertag config path                   Show the config file path
  ownertag toggle messages|members [on|off]
                                         Flip or set a badge display toggle
  ownertag import <snapshot.json> <snapshot.db>
                                         Convert a JSON snapshot to SQLite
  ownertag version                       Show version
  ownertag help                          Show this help

Global flags:
  --snapshot PATH    Snapshot file (overrides snapshot.path)
  --config PATH      Config file (default ~/.ownertag/config.toml)
  --json             Output in JSON format
  -v, --verbose      Debug logging

Viewer keys:
  m  toggle message badges      l  toggle member list badges
  r  reload snapshot            tab  switch pane
  q  quit

Environment:
  OWNERTAG_HOME, OWNERTAG_SNAPSHOT, OWNERTAG_DISPLAY_MESSAGES,
  OWNERTAG_DISPLAY_MEMBERS, OWNERTAG_THEME, OWNERTAG_LOG_LEVEL, NO_COLOR

Version: %s
`

// PrintUsage prints the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// Parse parses command-line arguments (without the program name) and returns
// the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "tui", "view":
		return CmdTUI, parsedArgs
	case "classify", "tier":
		return CmdClassify, parsedArgs
	case "permissions", "perms":
		return CmdPermissions, parsedArgs
	case "render":
		return CmdRender, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "toggle":
		return CmdToggle, parsedArgs
	case "import":
		return CmdImport, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		parsedArgs.Raw = remaining
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--snapshot", "--config":
			if i+1 < len(args) {
				i++
				if arg == "--snapshot" {
					parsedArgs.SnapshotPath = args[i]
				} else {
					parsedArgs.ConfigPath = args[i]
				}
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--snapshot="):
				parsedArgs.SnapshotPath = strings.TrimPrefix(arg, "--snapshot=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// Execute runs a non-interactive command and returns the process exit code.
func Execute(cmd Command, args Args, stdout, stderr io.Writer) int {
	switch cmd {
	case CmdHelp:
		if len(args.Raw) > 0 {
			fmt.Fprintf(stderr, "Unknown command: %s\n\n", args.Raw[0])
			PrintUsage(stderr)
			return ExitUsageError
		}
		PrintUsage(stdout)
		return ExitSuccess
	case CmdVersion:
		return report(stderr, cmd, args.JSON, HandleVersion(stdout, args))
	case CmdTUI:
		// The viewer is started by main; it never reaches Execute.
		return report(stderr, cmd, args.JSON, fmt.Errorf("the viewer cannot run through Execute"))
	}

	env, err := NewEnv(args, stdout, stderr)
	if err != nil {
		return report(stderr, cmd, args.JSON, err)
	}
	defer env.Close()

	var handler func(*Env, Args) error
	switch cmd {
	case CmdClassify:
		handler = HandleClassify
	case CmdPermissions:
		handler = HandlePermissions
	case CmdRender:
		handler = HandleRender
	case CmdConfig:
		handler = HandleConfig
	case CmdToggle:
		handler = HandleToggle
	case CmdImport:
		handler = HandleImport
	}

	if err := handler(env, args); err != nil {
		env.Logger.Debug("command failed", "command", cmd.String(), "error", err)
		return report(stderr, cmd, args.JSON, err)
	}
	return ExitSuccess
}

func report(w io.Writer, cmd Command, jsonMode bool, err error) int {
	if err == nil {
		return ExitSuccess
	}
	DisplayError(w, cmd.String(), err, jsonMode)
	return GetExitCode(err)
}

// HandleVersion prints version information.
func HandleVersion(w io.Writer, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Write(w)
	}
	fmt.Fprintf(w, "ownertag version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	return nil
}
