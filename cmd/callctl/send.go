package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

var (
	sendURL        string
	sendMaxElapsed time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send <file.json>",
	Short: "POST a webhook payload to a running API",
	Long:  "Replays a stored call payload (one object or an array) against the webhook. Network errors and 5xx responses are retried with exponential backoff.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}

		url := sendURL
		if url == "" {
			url = fmt.Sprintf("http://localhost:%d/api/webhook", cfg.App.Port)
		}

		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = sendMaxElapsed

		client := &http.Client{Timeout: 30 * time.Second}
		status, resp, err := postWithRetry(cmd.Context(), client, url, body, b)
		if err != nil {
			return err
		}

		log.Info("webhook answered", "url", url, "status", status)
		_, _ = cmd.OutOrStdout().Write(append(resp, '\n'))
		if status >= 400 {
			return fmt.Errorf("webhook returned %d", status)
		}
		return nil
	},
}

// postWithRetry POSTs body until it gets a non-5xx answer or b gives up.
// Any answer below 500 is final and returned as is.
func postWithRetry(ctx context.Context, client *http.Client, url string, body []byte, b backoff.BackOff) (int, []byte, error) {
	var (
		status  int
		payload []byte
		attempt int
	)
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Warn("webhook request failed", "attempt", attempt, "err", err)
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			log.Warn("webhook server error", "attempt", attempt, "status", resp.StatusCode)
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		status, payload = resp.StatusCode, data
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return 0, nil, fmt.Errorf("send after %d attempts: %w", attempt, err)
	}
	return status, payload, nil
}

func init() {
	sendCmd.Flags().StringVar(&sendURL, "url", "", "webhook URL (default http://localhost:$APP_PORT/api/webhook)")
	sendCmd.Flags().DurationVar(&sendMaxElapsed, "max-elapsed", time.Minute, "give up retrying after this long")
	rootCmd.AddCommand(sendCmd)
}
