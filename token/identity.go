package token

import (
	"fmt"
	"strings"
)

// Identifier types recognised by the platform.
const (
	IdentifierEmail = "email"
	IdentifierPhone = "phone"
)

// Identity is the user a token is minted for. It is implemented by User and
// StructuredUser only.
type Identity interface {
	// Subject returns the user id carried in the userId claim.
	Subject() string
	claims() (*claimSet, error)
}

// User is the simple identity shape: a flat user record plus admin scopes.
type User struct {
	ID                  string
	Email               string
	Name                string
	AvatarURL           string
	AdminScopes         []string
	AllowedEmailDomains []string
}

func (u User) Subject() string { return u.ID }

func (u User) claims() (*claimSet, error) {
	if strings.TrimSpace(u.ID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidIdentity)
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, fmt.Errorf("%w: user email is required", ErrInvalidIdentity)
	}

	c := newClaimSet()
	c.set("userId", u.ID)
	c.set("userEmail", u.Email)
	if u.Name != "" {
		c.set("userName", u.Name)
	}
	if u.AvatarURL != "" {
		c.set("userAvatarUrl", u.AvatarURL)
	}
	if len(u.AdminScopes) > 0 {
		c.set("adminScopes", u.AdminScopes)
	}
	if len(u.AllowedEmailDomains) > 0 {
		c.set("allowedEmailDomains", u.AllowedEmailDomains)
	}
	return c, nil
}

// Identifier is one way of reaching a user, e.g. {email, a@b.c}.
type Identifier struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Group is a membership the platform scopes invitations to.
type Group struct {
	Type string `json:"type"`
	ID   string `json:"groupId"`
	Name string `json:"name,omitempty"`
}

// StructuredUser is the identity shape with an identifier list, groups and a role.
type StructuredUser struct {
	ID          string
	Identifiers []Identifier
	Groups      []Group
	Role        string
}

func (u StructuredUser) Subject() string { return u.ID }

func (u StructuredUser) claims() (*claimSet, error) {
	if strings.TrimSpace(u.ID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidIdentity)
	}
	reachable := false
	for _, id := range u.Identifiers {
		if id.Value == "" {
			return nil, fmt.Errorf("%w: identifier %q has no value", ErrInvalidIdentity, id.Type)
		}
		if id.Type == IdentifierEmail || id.Type == IdentifierPhone {
			reachable = true
		}
	}
	if !reachable {
		return nil, fmt.Errorf("%w: at least one email or phone identifier is required", ErrInvalidIdentity)
	}

	c := newClaimSet()
	c.set("userId", u.ID)
	c.set("identifiers", u.Identifiers)
	if len(u.Groups) > 0 {
		c.set("groups", u.Groups)
	}
	if u.Role != "" {
		c.set("role", u.Role)
	}
	return c, nil
}
