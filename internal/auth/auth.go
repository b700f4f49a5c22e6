package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnauthorized = errors.New("unauthorized")

// Principal identifies who is acting and for which organization. Every
// mutation records ActorID in the audit log.
type Principal struct {
	OrgID   uuid.UUID
	ActorID uuid.UUID
}

// System is used for mutations triggered by providers rather than people.
func System(orgID uuid.UUID) Principal {
	return Principal{OrgID: orgID, ActorID: uuid.Nil}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

type claims struct {
	OrgID string `json:"org_id"`
	jwt.RegisteredClaims
}

// Verifier issues and validates HS256 bearer tokens. The subject carries the
// actor id and the org_id claim the organization.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (v *Verifier) Parse(token string) (Principal, error) {
	var c claims

	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	orgID, err := uuid.Parse(c.OrgID)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: invalid org_id claim", ErrUnauthorized)
	}

	actorID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: invalid subject", ErrUnauthorized)
	}

	return Principal{OrgID: orgID, ActorID: actorID}, nil
}

func (v *Verifier) Issue(p Principal, ttl time.Duration) (string, error) {
	now := v.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		OrgID: p.OrgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ActorID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
