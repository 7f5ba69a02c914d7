package users

import (
	"context"
)

// Auther orchestrates login: verify the identity, issue a token
type Auther struct {
	provider IdentityProvider
	tokens   TokenService
	logger   Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator will create a new Auther
func NewAuthenticator(provider IdentityProvider, tokens TokenService) *Auther {
	return &Auther{
		provider: provider,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(l Logger) *Auther {
	if l != nil {
		s.logger = l
	}
	return s
}

// Login verifies the credentials and returns a signed token plus the
// identity it was issued for. Verification errors pass through untouched so
// the HTTP layer maps them without inspecting causes.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Warn("login rejected for identifier")
		return "", nil, err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error("failed to issue token: %v", err)
		return "", nil, err
	}

	return token, identity, nil
}
