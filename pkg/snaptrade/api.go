package snaptrade

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var errUserRequired = errors.New("snaptrade: user ID and secret required")

// APIStatus fetches the API health report and refreshes the server clock
// offset from its timestamp.
func (c *Client) APIStatus(ctx context.Context) (*Status, error) {
	before := time.Now()
	status, err := c.status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Timestamp.IsZero() {
		local := before.Add(time.Since(before) / 2)
		c.timeSync.observe(status.Timestamp.Sub(local))
	}
	return status, nil
}

func (c *Client) status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// serverTime backs TimeSync.Sync.
func (c *Client) serverTime(ctx context.Context) (time.Time, error) {
	status, err := c.status(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if status.Timestamp.IsZero() {
		return time.Time{}, errors.New("snaptrade: status response carried no timestamp")
	}
	return status.Timestamp, nil
}

// RegisterUser creates an end user. An empty userID is replaced by a random
// UUID. The returned secret must be stored by the caller.
func (c *Client) RegisterUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		userID = uuid.NewString()
	}
	payload := map[string]string{"userId": userID}

	var user User
	if err := c.do(ctx, http.MethodPost, "/snapTrade/registerUser", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns the IDs of all users registered under this client.
func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	var users []string
	if err := c.do(ctx, http.MethodGet, "/snapTrade/listUsers", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser queues a user and all of its connections for deletion.
func (c *Client) DeleteUser(ctx context.Context, userID string) (*DeleteUserResponse, error) {
	if userID == "" {
		return nil, errors.New("snaptrade: user ID required")
	}
	params := url.Values{}
	params.Set("userId", userID)

	var resp DeleteUserResponse
	if err := c.do(ctx, http.MethodDelete, "/snapTrade/deleteUser", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginURL returns a connection portal link for the user.
func (c *Client) LoginURL(ctx context.Context, user User) (*LoginRedirect, error) {
	params, err := userParams(user)
	if err != nil {
		return nil, err
	}
	var redirect LoginRedirect
	if err := c.do(ctx, http.MethodPost, "/snapTrade/login", params, nil, &redirect); err != nil {
		return nil, err
	}
	return &redirect, nil
}

// ListAccounts returns every brokerage account the user has connected.
func (c *Client) ListAccounts(ctx context.Context, user User) ([]Account, error) {
	params, err := userParams(user)
	if err != nil {
		return nil, err
	}
	var accounts []Account
	if err := c.do(ctx, http.MethodGet, "/accounts", params, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AccountBalances returns cash balances of one account.
func (c *Client) AccountBalances(ctx context.Context, user User, accountID string) ([]Balance, error) {
	params, err := userParams(user)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, errors.New("snaptrade: account ID required")
	}
	var balances []Balance
	if err := c.do(ctx, http.MethodGet, "/accounts/"+accountID+"/balances", params, nil, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// AccountPositions returns open positions of one account.
func (c *Client) AccountPositions(ctx context.Context, user User, accountID string) ([]Position, error) {
	params, err := userParams(user)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return nil, errors.New("snaptrade: account ID required")
	}
	var positions []Position
	if err := c.do(ctx, http.MethodGet, "/accounts/"+accountID+"/positions", params, nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func userParams(user User) (url.Values, error) {
	if user.UserID == "" || user.UserSecret == "" {
		return nil, errUserRequired
	}
	params := url.Values{}
	params.Set("userId", user.UserID)
	params.Set("userSecret", user.UserSecret)
	return params, nil
}
