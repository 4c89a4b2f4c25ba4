package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/gemvoice/internal/api"
	"github.com/diogo/gemvoice/internal/config"
	"github.com/diogo/gemvoice/internal/models"
	"github.com/diogo/gemvoice/internal/render"
)

// runQuery executes a single query and outputs the response. When stdout
// is not a TTY only the raw response text is printed.
func runQuery(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	rawOutput := !isStdoutTTY()

	cfg, _ := config.LoadConfig()
	secrets := config.SecretsFromEnv()

	modelName := getModel()
	model := models.ModelFromName(modelName)

	persona, err := getPersona()
	if err != nil {
		return err
	}

	client, err := api.NewClient(secrets.GeminiAPIKey, api.WithModel(model))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	// Attach image if provided
	var images []api.InlineImage
	if imageFlag != "" {
		img, err := loadImage(imageFlag)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	// Generate content
	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Thinking")
		spin.start()
	}

	opts := &api.GenerateOptions{Images: images}
	output, err := client.GenerateContent(context.Background(), config.FormatPrompt(persona, prompt), opts)
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Generation failed"))
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	text := output.Text()

	// Raw output mode: output only the raw text
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(text)
		return nil
	}

	// Decorated output mode (TTY)
	fmt.Fprintln(os.Stderr)

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorDanger).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(os.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", outputFlag),
		)
		fmt.Fprintln(os.Stderr, successMsg)
		return nil
	}

	// Get terminal width for proper formatting
	termWidth := getTerminalWidth()
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	label := assistantLabelStyle.Render("✦ Gemini")
	fmt.Println(label)

	renderOpts := render.LoadOptionsFromConfigWithWidth(contentWidth)
	rendered, err := render.Markdown(text, renderOpts)
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	fmt.Println(bubble)

	// Voice the reply when requested
	if speakFlag || cfg.SpeakReplies {
		speaker, err := buildSpeaker(cfg, secrets)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Speech unavailable"))
			return nil
		}

		spin = newSpinner("Speaking")
		spin.start()
		if err := speaker.Speak(context.Background(), text); err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Speech failed"))
			return nil
		}
		spin.stopWithSuccess("Spoken")
	}

	return nil
}

// loadImage reads an image file and determines its media type
func loadImage(path string) (api.InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.InlineImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	return api.InlineImage{Data: data, MIME: imageMIME(path, data)}, nil
}

// imageMIME determines the media type from the file extension, falling
// back to content sniffing
func imageMIME(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return http.DetectContentType(data)
	}
}
