package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gemvoice/assets"
	"github.com/diogo/gemvoice/internal/api"
	"github.com/diogo/gemvoice/internal/chat"
	"github.com/diogo/gemvoice/internal/config"
	"github.com/diogo/gemvoice/internal/history"
	"github.com/diogo/gemvoice/internal/models"
	"github.com/diogo/gemvoice/internal/render"
	"github.com/diogo/gemvoice/internal/transcript"
	"github.com/diogo/gemvoice/internal/tui"
)

var (
	resumeFlag    string
	chatImageFlag string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Gemini.

The chat maintains conversation context across messages. Replies can be
spoken aloud with /speak or ctrl+s, and every exchange is saved to local
history for later resuming.

Type '/exit', '/quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	chatCmd.Flags().StringVar(&resumeFlag, "resume", "",
		"Resume a conversation (@last, index, title substring, or ID)")
	chatCmd.Flags().StringVar(&chatImageFlag, "image", "",
		"Image file sent by the /image command (defaults to a bundled sample)")
}

func runChat() error {
	cfg, _ := config.LoadConfig()
	secrets := config.SecretsFromEnv()

	// Apply configured theme before any styles render
	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		tui.UpdateTheme()
	}

	modelName := getModel()
	model := models.ModelFromName(modelName)

	persona, err := getPersona()
	if err != nil {
		return err
	}
	personaName := ""
	if persona != nil {
		personaName = persona.Name
	}

	client, err := api.NewClient(secrets.GeminiAPIKey, api.WithModel(model))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	historyStore, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	// Resume an existing conversation or start a new one
	chatOpts := []api.ChatOption{api.WithChatModel(model)}
	var conversationID string
	if resumeFlag != "" {
		resolver := history.NewResolver(historyStore)
		conv, err := resolver.ResolveWithInfo(resumeFlag)
		if err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
		chatOpts = append(chatOpts, api.WithHistory(conv.Turns()))
		conversationID = conv.ID
		fmt.Fprintf(os.Stderr, "Resuming: %s (%d messages)\n", conv.Title, len(conv.Messages))
	} else {
		conv, err := historyStore.CreateConversation(modelName, personaName)
		if err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}
		conversationID = conv.ID
	}

	session := client.StartChat(chatOpts...)
	dispatcher := chat.NewDispatcher(session, transcript.NewStore(), persona)

	// Speech is optional: without a key or player the chat still works
	var speaker tui.Voice
	if s, err := buildSpeaker(cfg, secrets); err == nil {
		speaker = s
	} else if cfg.SpeakReplies {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Speech unavailable"))
	}

	attachData, attachMIME := assets.ExamplePNG, assets.ExampleMIME
	if chatImageFlag != "" {
		img, err := loadImage(chatImageFlag)
		if err != nil {
			return err
		}
		attachData, attachMIME = img.Data, img.MIME
	}

	return tui.RunChat(dispatcher, tui.Options{
		ModelName:      modelName,
		PersonaName:    personaName,
		SpeakReplies:   cfg.SpeakReplies && speaker != nil,
		Speaker:        speaker,
		History:        historyStore,
		ConversationID: conversationID,
		AttachImage:    attachData,
		AttachMIME:     attachMIME,
	})
}
