package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/gemvoice/internal/config"
	"github.com/diogo/gemvoice/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long:  `View and modify gemvoice settings stored in ~/.gemvoice/config.json.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Available keys:

  model          Default model (fast, pro)
  tts-provider   Speech backend (elevenlabs, openai)
  tts-voice      Voice for the openai provider
  tts-model      Model for the openai provider
  speak-replies  Voice every chat reply automatically (true/false)
  clipboard      Copy query replies to the clipboard (true/false)
  theme          TUI color theme (tokyonight, nord, dracula)
  style          Markdown render style (dark, light, dracula, notty, ascii)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "model\t%s\n", cfg.DefaultModel)
	_, _ = fmt.Fprintf(w, "tts-provider\t%s\n", cfg.TTSProvider)
	_, _ = fmt.Fprintf(w, "tts-voice\t%s\n", cfg.TTSVoice)
	_, _ = fmt.Fprintf(w, "tts-model\t%s\n", cfg.TTSModel)
	_, _ = fmt.Fprintf(w, "speak-replies\t%t\n", cfg.SpeakReplies)
	_, _ = fmt.Fprintf(w, "clipboard\t%t\n", cfg.CopyToClipboard)
	_, _ = fmt.Fprintf(w, "theme\t%s\n", cfg.TUITheme)
	_, _ = fmt.Fprintf(w, "style\t%s\n", cfg.Markdown.Style)
	return w.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "model":
		if !contains(config.AvailableModels(), value) {
			return fmt.Errorf("unknown model '%s' (available: %s)",
				value, strings.Join(config.AvailableModels(), ", "))
		}
		cfg.DefaultModel = value

	case "tts-provider":
		if !contains(config.AvailableTTSProviders(), value) {
			return fmt.Errorf("unknown provider '%s' (available: %s)",
				value, strings.Join(config.AvailableTTSProviders(), ", "))
		}
		cfg.TTSProvider = value

	case "tts-voice":
		cfg.TTSVoice = value

	case "tts-model":
		cfg.TTSModel = value

	case "speak-replies":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("speak-replies must be true or false")
		}
		cfg.SpeakReplies = b

	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b

	case "theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme '%s' (available: %s)",
				value, strings.Join(render.TUIThemeNames(), ", "))
		}
		cfg.TUITheme = value

	case "style":
		cfg.Markdown.Style = value

	default:
		return fmt.Errorf("unknown setting '%s'", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s set to %s\n", key, value)
	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
