package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultPiPlatformURL = "https://api.minepi.com"

// PiPlatformClient talks to the Pi platform API. It doubles as the
// "introspection" TokenVerifier (GET /v2/me with the player's bearer token)
// and as the payment lookup used by the purchase verification worker.
type PiPlatformClient struct {
	BaseURL string
	Client  *http.Client
}

func NewPiPlatformClient() *PiPlatformClient {
	baseURL := os.Getenv("PI_PLATFORM_URL")
	if baseURL == "" {
		baseURL = defaultPiPlatformURL
	}
	return &PiPlatformClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type piMeResponse struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
}

// Verify calls /v2/me with the player's token. A 401 from the platform means
// the credential is bad; a network error or 5xx means the platform is down,
// which is our dependency failure, not the caller's.
func (c *PiPlatformClient) Verify(token string) (*PiIdentity, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v2/me", c.BaseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[PI_AUTH] platform unreachable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	default:
		log.Printf("[PI_AUTH] unexpected status %d from /v2/me: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: platform returned %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var me piMeResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return nil, fmt.Errorf("%w: bad platform response", ErrVerifierUnavailable)
	}
	if me.UID == "" {
		return nil, ErrInvalidToken
	}
	return &PiIdentity{OwnerID: me.UID, Username: me.Username}, nil
}

type piPaymentResponse struct {
	Identifier string `json:"identifier"`
	Status     struct {
		DeveloperApproved   bool `json:"developer_approved"`
		TransactionVerified bool `json:"transaction_verified"`
		DeveloperCompleted  bool `json:"developer_completed"`
		Cancelled           bool `json:"cancelled"`
		UserCancelled       bool `json:"user_cancelled"`
	} `json:"status"`
}

// LookupPayment fetches a payment by identifier using the app's server API
// key. Returns whether the transaction is verified on-chain and whether it
// was cancelled. Used by the purchase settlement worker, never on the
// request path.
func (c *PiPlatformClient) LookupPayment(apiKey, paymentID string) (verified, cancelled bool, err error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v2/payments/%s", c.BaseURL, paymentID), nil)
	if err != nil {
		return false, false, err
	}
	req.Header.Set("Authorization", "Key "+apiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return false, false, fmt.Errorf("payment lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, false, fmt.Errorf("payment lookup returned %d: %s", resp.StatusCode, string(body))
	}

	var payment piPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return false, false, fmt.Errorf("failed to decode payment response: %w", err)
	}
	cancelled = payment.Status.Cancelled || payment.Status.UserCancelled
	return payment.Status.TransactionVerified && !cancelled, cancelled, nil
}
