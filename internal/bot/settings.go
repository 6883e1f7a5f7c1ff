package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "ordertrack/internal/errors"
)

// NewSettingsCommand registers /settings with view and set subcommands
// over the custom-settings store. Developer-only.
func NewSettingsCommand(settings SettingsStore) *Command {
	return &Command{
		Name:        "settings",
		Description: "View and modify custom bot settings.",
		DevOnly:     true,
		Execute: func(ctx context.Context, ic Interaction) (Reply, error) {
			switch ic.Subcommand {
			case "view":
				return viewSettings(ctx, settings)
			case "set":
				return setSetting(ctx, settings, ic.Option("setting_name"), ic.Option("value"))
			default:
				return Reply{}, apperrors.NewValidationError(fmt.Sprintf("unknown subcommand %q", ic.Subcommand))
			}
		},
	}
}

func viewSettings(ctx context.Context, settings SettingsStore) (Reply, error) {
	all, err := settings.All(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(all) == 0 {
		return Reply{Content: "No custom settings have been configured yet.", Ephemeral: true}, nil
	}

	embed := Embed{
		Title:       "Custom settings",
		Description: "Here are the currently configured settings.",
		Color:       "#0099FF",
	}

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		embed.AddField(fmt.Sprintf("**%s**", key), formatSettingValue(all[key]), false)
	}

	return Reply{Embeds: []Embed{embed}, Ephemeral: true}, nil
}

func setSetting(ctx context.Context, settings SettingsStore, name, raw string) (Reply, error) {
	if name == "" {
		return Reply{}, apperrors.NewValidationError("setting_name is required")
	}

	value := coerceValue(raw)
	if err := settings.Set(ctx, name, value); err != nil {
		return Reply{}, err
	}

	stored, err := settings.Get(ctx, name)
	if err != nil {
		return Reply{}, err
	}

	embed := Embed{
		Title:       "Setting Updated",
		Description: fmt.Sprintf("Successfully updated the setting `%s`.", name),
		Color:       "#4CAF50",
	}
	embed.AddField("Setting Name", fmt.Sprintf("`%s`", name), true)
	embed.AddField("New Value", formatSettingValue(stored), false)

	return Reply{Embeds: []Embed{embed}, Ephemeral: true}, nil
}

// coerceValue interprets the raw option the way the original bot did:
// JSON first, then number, then boolean, falling back to the raw string.
func coerceValue(raw string) any {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

func formatSettingValue(value any) string {
	if obj, ok := value.(map[string]any); ok {
		pretty, err := json.MarshalIndent(obj, "", "  ")
		if err == nil {
			return fmt.Sprintf("```json\n%s\n```", pretty)
		}
	}
	return fmt.Sprintf("`%v`", value)
}
