package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/killallgit/scribe/pkg/chat"
	"github.com/killallgit/scribe/pkg/config"
	"github.com/killallgit/scribe/pkg/controllers"
	"github.com/killallgit/scribe/pkg/logger"
	"github.com/killallgit/scribe/pkg/reducer"
	"github.com/killallgit/scribe/pkg/transport"
)

const eventsTopic = "events"

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	thoughtStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	systemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	mediaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// RunApp wires the websocket to the reducer and tails the transcript
// until interrupted or the connection drops.
func RunApp(ctx context.Context) error {
	log := logger.WithComponent("app")
	settings := config.Get()

	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	r := reducer.New(settings.Transcript.MaxMessages)
	r.SetItemListener(printItem)

	coord := reducer.NewCoordinator(r,
		reducer.Source{Name: "primary", Subscriber: pubsub, Topic: eventsTopic},
	)
	if err := coord.Start(ctx); err != nil {
		return err
	}
	defer coord.Stop()

	client := transport.NewWSClient(settings.Server.URL, eventsTopic, pubsub)
	dialCtx, cancel := context.WithTimeout(ctx, time.Duration(settings.Server.Timeout)*time.Second)
	defer cancel()
	if err := client.Connect(dialCtx); err != nil {
		return err
	}
	defer client.Close()

	fmt.Println(systemStyle.Render("connected to " + settings.Server.URL))

	controller := controllers.NewTranscriptController(r, client)
	if prompt := viper.GetString("prompt"); prompt != "" {
		if err := controller.SendMessage(ctx, prompt, nil); err != nil {
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-sig:
		log.Info().Msg("interrupted")
	case <-client.Done():
		log.Info().Msg("connection closed by server")
		fmt.Println(errorStyle.Render("connection closed"))
	case <-ctx.Done():
	}

	return nil
}

func printItem(item chat.Item) {
	switch it := item.(type) {
	case chat.Message:
		fmt.Println(renderMessage(it))
	case chat.SystemAlert:
		content := ""
		if it.Content != nil {
			content = *it.Content
		}
		style := systemStyle
		if it.Severity == chat.SeverityError {
			style = errorStyle
		}
		fmt.Println(style.Render(fmt.Sprintf("[%s] %s", it.Severity, content)))
	case chat.Divider:
		label := "sub-session"
		if it.SubAgentType != "" {
			label = it.SubAgentType
		}
		marker := "--- " + label + " ---"
		if it.DividerType == chat.DividerEnd {
			marker = "--- end ---"
		}
		fmt.Println(dividerStyle.Render(marker))
	case chat.Media:
		ref := it.URL
		if ref == "" {
			ref = fmt.Sprintf("%d bytes inline", len(it.Payload))
		}
		fmt.Println(mediaStyle.Render(fmt.Sprintf("[media %s] %s", it.MimeType, ref)))
	}
}

func renderMessage(msg chat.Message) string {
	switch msg.Role {
	case chat.RoleUser:
		return userStyle.Render("you> ") + msg.Content
	case chat.RoleAssistant:
		return assistantStyle.Render("agent> ") + msg.Content
	case chat.RoleThought:
		return thoughtStyle.Render("(thinking) " + msg.Content)
	default:
		return systemStyle.Render(msg.Role+"> ") + msg.Content
	}
}
