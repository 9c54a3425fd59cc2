package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nadzzz/playcue/internal/message"
)

var (
	sendURL    string
	sendSource string
	sendDryRun bool
)

var sendCmd = &cobra.Command{
	Use:   "send <command...>",
	Short: "Send a command to a running playcue daemon over HTTP",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendURL, "url", "http://localhost:8080", "daemon base URL")
	sendCmd.Flags().StringVar(&sendSource, "source", "playcuectl", "sender identifier")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "interpret without routing to executors")
}

func runSend(cmd *cobra.Command, args []string) error {
	body, err := json.Marshal(message.Message{
		Source:      sendSource,
		Text:        strings.Join(args, " "),
		Instruction: message.Instruction{DryRun: sendDryRun},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
		strings.TrimSuffix(sendURL, "/")+"/dispatch", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending command: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("daemon returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var result message.DispatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return printJSON(out, result)
	}
	if result.Error != "" {
		return fmt.Errorf("daemon: %s", result.Error)
	}
	fmt.Fprintln(out, result.ResponseText)
	if len(result.RoutedTo) > 0 {
		fmt.Fprintf(out, "  routed to: %s\n", strings.Join(result.RoutedTo, ", "))
	}
	if result.Failure != nil {
		return errRejected
	}
	return nil
}
