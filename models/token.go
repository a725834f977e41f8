package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for the gateway auth
// flow.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// Caller is a cached, parsed copy of the "sub" (subject) claim decoded as a
// 20-byte account address. It is populated after a successful parse and
// avoids repeated hex decoding.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the compact
	// string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Caller is the account address extracted from the "sub" claim.
	Caller common.Address `json:"-"`
}

// GetCaller extracts the account address from the token's "sub" (subject)
// claim and returns it.
//
// Returns an error if the subject claim is missing, empty, or is not a valid
// hex-encoded 20-byte address.
func (t *Token) GetCaller() (common.Address, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return common.Address{}, fmt.Errorf("error extracting caller from token: %w", err)
	}

	if !common.IsHexAddress(subject) {
		return common.Address{}, fmt.Errorf("token subject %q is not a valid address", subject)
	}

	return common.HexToAddress(subject), nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
