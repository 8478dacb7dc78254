// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/morganforge/ownertag/internal/config"
	"github.com/morganforge/ownertag/internal/tag"
)

// HandleConfig shows and edits the configuration.
//
//	ownertag config show | path | get <key> | set <key> <value>
func HandleConfig(env *Env, args Args) error {
	p := NewArgParser(args.Raw)

	switch sub := p.Subcommand(); sub {
	case "", "show":
		return configShow(env)
	case "path":
		if env.JSON {
			return NewJSONResponse("config", ConfigData{Path: env.ConfigPath}).Write(env.Out)
		}
		fmt.Fprintln(env.Out, env.ConfigPath)
		return nil
	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "ownertag config get display.members")
		}
		val, err := env.Config.Get(key)
		if err != nil {
			return &ValidationError{Field: "key", Value: key, Reason: err.Error(), Example: strings.Join(config.GetAllKeys(), ", ")}
		}
		if env.JSON {
			return NewJSONResponse("config", ConfigData{Path: env.ConfigPath, Key: key, Value: val}).Write(env.Out)
		}
		fmt.Fprintln(env.Out, formatValue(val))
		return nil
	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if key == "" || p.PositionalCount() < 3 {
			return ErrMissingArgument("key and value", "ownertag config set ui.theme dark")
		}
		return configSet(env, key, value)
	default:
		return ErrInvalidValue("subcommand", sub, "ownertag config show|path|get|set")
	}
}

func configShow(env *Env) error {
	if env.JSON {
		return NewJSONResponse("config", ConfigData{Path: env.ConfigPath, Config: env.Config}).Write(env.Out)
	}

	fmt.Fprintln(env.Out, RenderField("Config file", env.ConfigPath))
	fmt.Fprintln(env.Out)
	for _, key := range config.GetAllKeys() {
		val, err := env.Config.Get(key)
		if err != nil {
			continue
		}
		if b, ok := val.(bool); ok {
			fmt.Fprintln(env.Out, LabelStyle.Width(22).Render(key)+RenderOnOff(b))
			continue
		}
		fmt.Fprintln(env.Out, LabelStyle.Width(22).Render(key)+ValueStyle.Render(formatValue(val)))
	}
	return nil
}

func configSet(env *Env, key, value string) error {
	current, err := env.Config.Get(key)
	if err != nil {
		return &ValidationError{Field: "key", Value: key, Reason: err.Error(), Example: strings.Join(config.GetAllKeys(), ", ")}
	}

	var v interface{} = value
	if _, ok := current.(bool); ok {
		b, err := ParseBoolString(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "expected a boolean", Example: "on, off, true, false"}
		}
		v = b
	}
	err = env.UpdateConfig(func(c *config.Config) error {
		if err := c.Set(key, v); err != nil {
			return &ValidationError{Field: key, Value: value, Reason: err.Error()}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if env.JSON {
		saved, _ := env.Config.Get(key)
		return NewJSONResponse("config", ConfigData{Path: env.ConfigPath, Key: key, Value: saved}).Write(env.Out)
	}
	fmt.Fprintf(env.Out, "%s %s = %s\n", SuccessStyle.Render("Set"), key, value)
	return nil
}

// HandleToggle flips or sets one of the badge display toggles and saves it.
//
//	ownertag toggle messages|members [on|off]
func HandleToggle(env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	settings := env.Config.DisplaySettings()

	var target *bool
	switch which := p.Subcommand(); which {
	case "messages", "message":
		target = &settings.DisplayMessages
	case "members", "member", "list":
		target = &settings.DisplayMembers
	default:
		return ErrInvalidValue("toggle", which, "ownertag toggle messages|members [on|off]")
	}

	if value := p.Positional(1); value != "" {
		on, err := ParseBoolString(value)
		if err != nil {
			return ErrInvalidValue("state", value, "on or off")
		}
		*target = on
	} else {
		*target = !*target
	}

	err := env.UpdateConfig(func(c *config.Config) error {
		c.SetDisplaySettings(settings)
		return nil
	})
	if err != nil {
		return err
	}
	env.Logger.Info("display settings changed",
		"messages", settings.DisplayMessages,
		"members", settings.DisplayMembers)

	return printToggles(env, settings)
}

func printToggles(env *Env, s tag.Settings) error {
	if env.JSON {
		return NewJSONResponse("toggle", ToggleData{
			DisplayMessages: s.DisplayMessages,
			DisplayMembers:  s.DisplayMembers,
			ConfigPath:      env.ConfigPath,
		}).Write(env.Out)
	}
	fmt.Fprintln(env.Out, RenderField("Messages", RenderOnOff(s.DisplayMessages)))
	fmt.Fprintln(env.Out, RenderField("Member list", RenderOnOff(s.DisplayMembers)))
	return nil
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	return fmt.Sprint(v)
}
