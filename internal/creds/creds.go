// Package creds resolves SMTP credentials from the platform credential
// store with environment variables as a fallback. The store is an
// injectable capability so everything above it stays testable.
package creds

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
)

// Service is the fixed service name entries are keyed under in the
// platform store.
const Service = "rainseason"

// Account names within the service.
const (
	AccountHost = "smtp_host"
	AccountPort = "smtp_port"
	AccountUser = "smtp_user"
	AccountPass = "smtp_pass"
	AccountFrom = "smtp_from"
)

var (
	// ErrNoCredentials means no store held a usable credential set.
	ErrNoCredentials = errors.New("no email credentials found")

	// ErrNotFound is returned by a Store for an absent account.
	ErrNotFound = errors.New("credential not found")
)

// SMTP is a resolved credential set ready for the mailer.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Store is the minimal credential capability: get or set one secret by
// account name.
type Store interface {
	Get(account string) (string, error)
	Set(account, secret string) error
}

// KeyringStore persists secrets in the OS keychain / secret service.
type KeyringStore struct {
	service string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: Service}
}

func (s *KeyringStore) Get(account string) (string, error) {
	secret, err := keyring.Get(s.service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

func (s *KeyringStore) Set(account, secret string) error {
	return keyring.Set(s.service, account, secret)
}

// EnvStore reads SMTP_* environment variables. It is read-only.
type EnvStore struct{}

var envNames = map[string]string{
	AccountHost: "SMTP_HOST",
	AccountPort: "SMTP_PORT",
	AccountUser: "SMTP_USER",
	AccountPass: "SMTP_PASS",
	AccountFrom: "SMTP_FROM",
}

func (EnvStore) Get(account string) (string, error) {
	name, ok := envNames[account]
	if !ok {
		return "", ErrNotFound
	}
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

func (EnvStore) Set(string, string) error {
	return errors.New("environment store is read-only")
}

// Resolve walks the stores in order and returns the first one holding a
// password, filling the remaining fields from that store with the usual
// defaults (smtp.gmail.com:587, from = username).
func Resolve(stores ...Store) (SMTP, error) {
	for _, store := range stores {
		pass, err := store.Get(AccountPass)
		if err != nil || pass == "" {
			continue
		}

		cfg := SMTP{
			Host:     getOr(store, AccountHost, "smtp.gmail.com"),
			Username: getOr(store, AccountUser, ""),
			Password: pass,
		}

		portStr := getOr(store, AccountPort, "587")
		port, err := strconv.Atoi(strings.TrimSpace(portStr))
		if err != nil || port <= 0 {
			return SMTP{}, fmt.Errorf("invalid smtp port %q", portStr)
		}
		cfg.Port = port

		cfg.From = getOr(store, AccountFrom, cfg.Username)
		if cfg.Username == "" {
			return SMTP{}, fmt.Errorf("%w: smtp username is missing", ErrNoCredentials)
		}
		return cfg, nil
	}

	return SMTP{}, ErrNoCredentials
}

func getOr(store Store, account, fallback string) string {
	value, err := store.Get(account)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

// Setup interactively prompts for SMTP settings on in and writes them to
// the store. Used by --setup-email.
func Setup(store Store, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "=== Rainfall Tracker — Email Setup ===")
	fmt.Fprintf(out, "Credentials will be stored under service %q\n\n", Service)

	host, err := prompt(reader, out, "SMTP host [smtp.gmail.com]: ", "smtp.gmail.com")
	if err != nil {
		return err
	}
	port, err := prompt(reader, out, "SMTP port [587]: ", "587")
	if err != nil {
		return err
	}
	if _, convErr := strconv.Atoi(port); convErr != nil {
		return fmt.Errorf("invalid smtp port %q", port)
	}
	user, err := prompt(reader, out, "SMTP username (email): ", "")
	if err != nil {
		return err
	}
	if user == "" {
		return errors.New("smtp username is required")
	}
	pass, err := prompt(reader, out, "SMTP password (Gmail: use an App Password): ", "")
	if err != nil {
		return err
	}
	if pass == "" {
		return errors.New("smtp password is required")
	}
	from, err := prompt(reader, out, fmt.Sprintf("From address [%s]: ", user), user)
	if err != nil {
		return err
	}

	entries := map[string]string{
		AccountHost: host,
		AccountPort: port,
		AccountUser: user,
		AccountPass: pass,
		AccountFrom: from,
	}
	for account, secret := range entries {
		if err := store.Set(account, secret); err != nil {
			return fmt.Errorf("storing %s: %w", account, err)
		}
	}

	fmt.Fprintf(out, "\nCredentials saved (service %q).\n", Service)
	fmt.Fprintf(out, "You can now run:  rainseason --email %s\n", user)
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label, fallback string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}
