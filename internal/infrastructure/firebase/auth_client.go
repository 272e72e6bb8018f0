package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
)

const signInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key="

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:     client,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).
		Password(newPassword)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SignIn exchanges email and password for a Firebase ID token. The Admin SDK has no password
// sign-in, so this goes through the Identity Toolkit REST endpoint with the web API key.
func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("firebase api key is not configured")
	}

	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInURL+f.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign in request failed: %w", err)
	}
	defer resp.Body.Close()

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode sign in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || out.IDToken == "" {
		if out.Error != nil {
			return "", fmt.Errorf("sign in rejected: %s", out.Error.Message)
		}
		return "", fmt.Errorf("sign in rejected with status %d", resp.StatusCode)
	}

	return out.IDToken, nil
}
