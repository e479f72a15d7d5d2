package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/roster/internal/logger"
)

// Loopback ports tried for the redirect, in order.
const (
	DefaultPortStart = 18080
	DefaultPortEnd   = 18180
)

// DefaultTimeout bounds how long Login waits for the browser.
const DefaultTimeout = 5 * time.Minute

// ErrNoRefreshToken is returned when the provider grants access without
// a refresh token, which roster needs to list contacts later.
var ErrNoRefreshToken = errors.New("no refresh token returned")

// LoginOptions tune Login. Zero values use the defaults.
type LoginOptions struct {
	PortStart int
	PortEnd   int
	Timeout   time.Duration

	// Open launches the browser. Defaults to OpenBrowser.
	Open func(url string) error

	// Notify is called with the authorization URL before the browser opens,
	// so it can be shown when no browser is available.
	Notify func(url string)
}

// Login runs the authorization code flow with PKCE against a loopback
// redirect and returns the exchanged token. cfg.RedirectURL is set by Login.
func Login(ctx context.Context, cfg oauth2.Config, opts LoginOptions) (*oauth2.Token, error) {
	opts = opts.withDefaults()

	port, err := FindAvailablePort(opts.PortStart, opts.PortEnd)
	if err != nil {
		return nil, err
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	server := NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() { _ = server.Stop() }()

	cfg.RedirectURL = server.RedirectURI()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	if opts.Notify != nil {
		opts.Notify(authURL)
	}
	if err := opts.Open(authURL); err != nil {
		logger.Warn("oauth: could not open browser: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	code, err := server.WaitForCode(waitCtx)
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for tokens: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	return token, nil
}

func (o LoginOptions) withDefaults() LoginOptions {
	if o.PortStart == 0 {
		o.PortStart = DefaultPortStart
	}
	if o.PortEnd < o.PortStart {
		o.PortEnd = o.PortStart + (DefaultPortEnd - DefaultPortStart)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Open == nil {
		o.Open = OpenBrowser
	}
	return o
}
