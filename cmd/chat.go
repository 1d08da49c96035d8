package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	var (
		server  string
		name    string
		asAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Connect to a relay server as an interactive chat client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), server, name, asAdmin)
		},
	}

	cmd.Flags().StringVar(&server, "server", "ws://localhost:3000/ws", "relay WebSocket URL")
	cmd.Flags().StringVar(&name, "name", "", "username for the handshake (empty = anonymous)")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "connect as the administrator")

	return cmd
}

func runChat(ctx context.Context, server, name string, asAdmin bool) error {
	conn, _, err := websocket.Dial(ctx, server, nil)
	if err != nil {
		return fmt.Errorf("ws dial: %w", err)
	}
	conn.SetReadLimit(1 << 20) // 1MB
	defer conn.Close(websocket.StatusNormalClosure, "client exit")

	token := name
	if asAdmin {
		token = "ADMIN"
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte("IDENTIFY:"+token)); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	// Print inbound frames as they arrive.
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for {
			_, data, err := conn.Read(readCtx)
			if err != nil {
				return
			}
			fmt.Println(string(data))
		}
	}()

	fmt.Fprintln(os.Stderr, "Connected. Type a message, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := conn.Write(ctx, websocket.MessageText, []byte(line)); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	}
	return scanner.Err()
}
