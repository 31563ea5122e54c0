package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Account is a user account as reported by the identity provider's
// admin API.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	// Metadata carries free-form provider metadata; the "role" key set
	// to "admin" promotes the synced local user to ADMIN.
	Metadata map[string]string `json:"public_metadata"`
}

// IsAdmin reports whether provider metadata marks the account as admin.
func (a Account) IsAdmin() bool {
	return a.Metadata["role"] == "admin"
}

// Client calls the identity provider's admin API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an admin API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const listPageSize = 100

// ListAccounts fetches every user account from the provider, paging
// through the admin API.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	offset := 0
	for {
		page, err := c.listPage(ctx, listPageSize, offset)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, page...)
		if len(page) < listPageSize {
			return accounts, nil
		}
		offset += listPageSize
	}
}

func (c *Client) listPage(ctx context.Context, limit, offset int) ([]Account, error) {
	endpoint := c.baseURL + "/v1/users?" + url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity api status %d: %s", resp.StatusCode, body)
	}

	var page []Account
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return page, nil
}
