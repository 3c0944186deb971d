package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"leadfinder-engine/internal/config"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "leadfinder"

	AccountLLMKey = "leadfinder:llm:api_key"
)

func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("secret not found in keychain")
	}
	return pw, nil
}

func Set(account string, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func IMAPAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"leadfinder:imap:%s@%s",
		cfg.Sources.Jobmail.Username,
		cfg.Sources.Jobmail.IMAPHost,
	)
}

func SMTPAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"leadfinder:smtp:%s@%s",
		cfg.Outreach.From,
		cfg.Outreach.SMTPHost,
	)
}
