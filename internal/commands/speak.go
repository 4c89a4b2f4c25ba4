package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/gemvoice/internal/config"
)

var speakOutputFlag string

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Synthesize text to speech",
	Long: `Synthesize text through the configured speech provider and play it,
or save the audio to a file with -o.

Examples:
  gemvoice speak "Hello there"
  gemvoice speak "Hello there" -o hello.mp3
  echo "Hello there" | gemvoice speak`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) > 0 {
			text = args[0]
		} else {
			stat, _ := os.Stdin.Stat()
			if (stat.Mode() & os.ModeCharDevice) == 0 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}
		}

		text = strings.TrimSpace(text)
		if text == "" {
			return fmt.Errorf("nothing to speak")
		}

		return runSpeak(text)
	},
}

func init() {
	speakCmd.Flags().StringVarP(&speakOutputFlag, "output", "o", "", "Save audio to file instead of playing")
}

func runSpeak(text string) error {
	cfg, _ := config.LoadConfig()
	secrets := config.SecretsFromEnv()

	// Saving to a file needs no player
	if speakOutputFlag != "" {
		synth, err := buildSynthesizer(cfg, secrets)
		if err != nil {
			return err
		}

		spin := newSpinner("Synthesizing")
		spin.start()
		src, err := synth.Synthesize(context.Background(), text)
		if err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Synthesis failed"))
			return fmt.Errorf("synthesis failed: %w", err)
		}
		spin.stopWithSuccess("Synthesized")

		if err := os.WriteFile(speakOutputFlag, src.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved %d bytes to %s\n", src.Len(), speakOutputFlag)
		return nil
	}

	speaker, err := buildSpeaker(cfg, secrets)
	if err != nil {
		return err
	}

	spin := newSpinner("Speaking")
	spin.start()
	if err := speaker.Speak(context.Background(), text); err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Speech failed"))
		return fmt.Errorf("speech failed: %w", err)
	}
	spin.stopWithSuccess("Done")

	return nil
}
