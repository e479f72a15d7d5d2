package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ContactStore = (*Store)(nil)

// ContactsScope is the OAuth scope the refresh token must carry.
const ContactsScope = people.ContactsReadonlyScope

const defaultPageSize = 500

// Store lists the authenticated user's Google connections.
type Store struct {
	svc      *people.Service
	limiter  *RateLimiter
	pageSize int64
}

// NewStore creates a store authenticated with the configured refresh token.
func NewStore(ctx context.Context, cfg domain.GoogleContactsSettings) (*Store, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("%w: google contacts need client_id and refresh_token", domain.ErrInvalidInput)
	}

	oauthCfg := OAuthConfig(cfg)
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return newStore(ctx, option.WithTokenSource(ts))
}

// OAuthConfig returns the client configuration for read-only contacts access.
func OAuthConfig(cfg domain.GoogleContactsSettings) oauth2.Config {
	return oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoints.Google,
		Scopes:       []string{ContactsScope},
	}
}

func newStore(ctx context.Context, opts ...option.ClientOption) (*Store, error) {
	svc, err := people.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}
	return &Store{
		svc:      svc,
		limiter:  NewRateLimiter(DefaultRateLimit),
		pageSize: defaultPageSize,
	}, nil
}

// ListContacts pages through every connection. Phone numbers are only
// requested when fields asks for them.
func (s *Store) ListContacts(ctx context.Context, fields []domain.ContactField) ([]domain.Contact, error) {
	withPhones := domain.HasField(fields, domain.ContactFieldPhoneNumbers)
	personFields := "names"
	if withPhones {
		personFields = "names,phoneNumbers"
	}

	var (
		contacts  []domain.Contact
		pageToken string
	)
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.People.Connections.List("people/me").
			PersonFields(personFields).
			PageSize(s.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			wrapped := WrapError(err)
			if errors.Is(wrapped, ErrRateLimited) {
				s.limiter.RecordRateLimitError(0)
			}
			return nil, fmt.Errorf("list connections: %w", wrapped)
		}

		for _, person := range resp.Connections {
			contacts = append(contacts, toContact(person, withPhones))
		}

		logger.Debug("google contacts: fetched page of %d", len(resp.Connections))
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return contacts, nil
}

func toContact(person *people.Person, withPhones bool) domain.Contact {
	contact := domain.Contact{
		ID: strings.TrimPrefix(person.ResourceName, "people/"),
	}
	for _, name := range person.Names {
		if name.DisplayName != "" {
			contact.Name = name.DisplayName
			break
		}
	}
	if withPhones {
		for _, phone := range person.PhoneNumbers {
			if phone.Value == "" {
				continue
			}
			contact.PhoneNumbers = append(contact.PhoneNumbers, domain.PhoneNumber{
				Number: phone.Value,
				Label:  phone.FormattedType,
			})
		}
	}
	return contact
}
