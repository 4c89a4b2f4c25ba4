// Package commands provides CLI commands for gemvoice.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gemvoice/internal/config"
)

var (
	// Global flags
	modelFlag   string
	outputFlag  string
	fileFlag    string
	imageFlag   string
	personaFlag string
	speakFlag   bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gemvoice [prompt]",
	Short: "Voice-enabled CLI for the Gemini API",
	Long: `gemvoice is a command-line chat client for Google Gemini with
text-to-speech replies. Set GEMINI_API_KEY, and optionally
ELEVENLABS_API_KEY or OPENAI_API_KEY for speech.

Examples:
  gemvoice chat                         Start interactive chat
  gemvoice "What is Go?"                Send a single query
  gemvoice "What is Go?" --speak        Query and hear the reply
  gemvoice -i photo.jpg "Describe this" Ask about an image
  gemvoice -f prompt.md                 Read prompt from file
  cat prompt.md | gemvoice              Read prompt from stdin
  gemvoice speak "Hello there"          Synthesize text directly`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("gemvoice %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data))
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data))
		}

		if len(args) > 0 {
			return runQuery(args[0])
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (fast, pro)")
	rootCmd.PersistentFlags().StringVar(&personaFlag, "persona", "", "Persona to style replies with")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Path to image file to include")
	rootCmd.Flags().BoolVar(&speakFlag, "speak", false, "Speak the reply aloud")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(personaCmd)
}

// getModel returns the model name to use (from flag or config)
func getModel() string {
	if modelFlag != "" {
		return modelFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "fast"
	}

	return cfg.DefaultModel
}

// getPersona resolves the persona from the flag, falling back to the
// configured default. Returns nil when no persona applies.
func getPersona() (*config.Persona, error) {
	if personaFlag != "" {
		persona, err := config.GetPersona(personaFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to load persona '%s': %w", personaFlag, err)
		}
		return persona, nil
	}

	persona, err := config.GetDefaultPersona()
	if err != nil {
		return nil, nil
	}
	return persona, nil
}
