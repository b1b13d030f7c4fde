package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"sharyat/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// ErrUnregisteredToken marks a device token FCM no longer accepts. Callers
// should prune the token from storage.
var ErrUnregisteredToken = fmt.Errorf("device token is no longer registered")

// FCMClient sends push notifications through the FCM HTTP v1 API using a
// service account for auth.
type FCMClient struct {
	projectId  string
	httpClient *http.Client
}

func NewFCMClient(ctx context.Context) (*FCMClient, error) {
	cfg := config.Env()
	credentials, err := os.ReadFile(cfg.FCMCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading FCM credentials: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(credentials, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parsing FCM credentials: %w", err)
	}
	return &FCMClient{
		projectId:  cfg.FCMProjectId,
		httpClient: oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx)),
	}, nil
}

type fcmMessage struct {
	Message struct {
		Token        string            `json:"token"`
		Notification *fcmNotification  `json:"notification,omitempty"`
		Data         map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmErrorResponse struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send delivers one notification to one device token.
func (c *FCMClient) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	message := fcmMessage{}
	message.Message.Token = deviceToken
	message.Message.Notification = &fcmNotification{Title: title, Body: body}
	message.Message.Data = data

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", c.projectId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	responseBody, _ := io.ReadAll(resp.Body)
	var fcmError fcmErrorResponse
	_ = json.Unmarshal(responseBody, &fcmError)
	// UNREGISTERED and 404 both mean the token is dead
	if resp.StatusCode == http.StatusNotFound || fcmError.Error.Status == "UNREGISTERED" {
		return ErrUnregisteredToken
	}
	return fmt.Errorf("fcm send failed with status %d: %s", resp.StatusCode, fcmError.Error.Message)
}
