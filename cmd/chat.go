package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwyt0087/AI-employee-takes-leave/internal/chat"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/datautil"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the leave assistant",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message to the assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewChat); err != nil {
			return err
		}

		reply, err := app.Chat.Send(context.Background(), app.Store.UserID(), args[0])
		if err != nil {
			return fmt.Errorf("%s", app.Chat.Err())
		}

		fmt.Println(reply.Content)
		for _, doc := range reply.SourceDocuments {
			fmt.Printf("  source: %s\n", doc.Title)
		}
		return nil
	},
}

var chatHistoryFromServer bool

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewChat); err != nil {
			return err
		}

		messages := app.Chat.Messages()
		if chatHistoryFromServer {
			messages, err = app.Chat.FetchHistory(context.Background(), app.Store.UserID())
			if err != nil {
				return fmt.Errorf("%s", app.Chat.Err())
			}
		}

		for _, msg := range messages {
			printChatMessage(msg)
		}
		return nil
	},
}

var chatClearServer bool

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the conversation transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.openView(navigation.ViewChat); err != nil {
			return err
		}

		var userID int64
		if chatClearServer {
			userID = app.Store.UserID()
		}
		if err := app.Chat.Clear(context.Background(), userID); err != nil {
			return fmt.Errorf("%s", app.Chat.Err())
		}
		fmt.Println("transcript cleared")
		return nil
	},
}

func printChatMessage(msg chat.Message) {
	prefix := "you"
	switch msg.Type {
	case chat.MessageTypeAI:
		prefix = "assistant"
	case chat.MessageTypeError:
		prefix = "error"
	}
	fmt.Printf("[%s] %s: %s\n", datautil.FormatDateTime(msg.Timestamp), prefix, msg.Content)
}

func init() {
	chatHistoryCmd.Flags().BoolVar(&chatHistoryFromServer, "server", false, "fetch the server-side history instead of the local transcript")
	chatClearCmd.Flags().BoolVar(&chatClearServer, "server", false, "also clear the server-side history")

	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
}
