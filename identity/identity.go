package identity

import (
	"fmt"
	"time"

	"cardagency/config"

	"github.com/go-resty/resty/v2"
)

// Account is one identity-provider account as the admin API returns it.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Msg     string `json:"msg"`
}

func (e errorBody) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Msg
}

// client builds a resty client against the provider's admin REST base,
// authorized with the service-role key. Built per call so tests can
// repoint the base URL through config.
func client() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.IdentityApiURL).
		SetAuthToken(config.AppConfig.IdentityServiceKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
}

// CreateAccount provisions an identity-provider account. The provider
// rejects duplicate emails; its message is passed through verbatim.
func CreateAccount(email, password string) (*Account, error) {
	var account Account
	var apiErr errorBody

	resp, err := client().R().
		SetBody(map[string]interface{}{
			"email":         email,
			"password":      password,
			"email_confirm": true,
		}).
		SetResult(&account).
		SetError(&apiErr).
		Post("/admin/users")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("identity provider: %s", apiErr.text())
	}
	return &account, nil
}

// GetAccountByEmail looks up the provider account for an email.
func GetAccountByEmail(email string) (*Account, error) {
	var result struct {
		Users []Account `json:"users"`
	}
	var apiErr errorBody

	resp, err := client().R().
		SetQueryParam("email", email).
		SetResult(&result).
		SetError(&apiErr).
		Get("/admin/users")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("identity provider: %s", apiErr.text())
	}
	for _, acc := range result.Users {
		if acc.Email == email {
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("identity provider: no account for %s", email)
}

// DeleteAccountByEmail removes the provider account for an email.
func DeleteAccountByEmail(email string) error {
	account, err := GetAccountByEmail(email)
	if err != nil {
		return err
	}

	var apiErr errorBody
	resp, err := client().R().
		SetError(&apiErr).
		Delete("/admin/users/" + account.ID)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("identity provider: %s", apiErr.text())
	}
	return nil
}

// ListAccounts pages through every provider account. Used by the orphan
// sweep.
func ListAccounts() ([]Account, error) {
	var all []Account
	for page := 1; ; page++ {
		var result struct {
			Users []Account `json:"users"`
		}
		var apiErr errorBody

		resp, err := client().R().
			SetQueryParam("page", fmt.Sprintf("%d", page)).
			SetQueryParam("per_page", "100").
			SetResult(&result).
			SetError(&apiErr).
			Get("/admin/users")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("identity provider: %s", apiErr.text())
		}
		if len(result.Users) == 0 {
			break
		}
		all = append(all, result.Users...)
		if len(result.Users) < 100 {
			break
		}
	}
	return all, nil
}
