package rest

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/gofiber/fiber/v2"
)

const (
	HeaderIdentity  = "X-Identity"
	HeaderSignature = "X-Signature"

	identityLocal = "identity"
)

// SigningPayload is what a caller signs: method, path and raw body.
func SigningPayload(method, path string, body []byte) []byte {
	msg := make([]byte, 0, len(method)+len(path)+len(body)+2)
	msg = append(msg, method...)
	msg = append(msg, '\n')
	msg = append(msg, path...)
	msg = append(msg, '\n')
	return append(msg, body...)
}

// verifySigner checks the ed25519 signature of the request when one is
// supplied and stores the verified identity. Unsigned requests pass through
// with no signer; operations that need one fail later.
func verifySigner(c *fiber.Ctx) error {
	rawID := c.Get(HeaderIdentity)
	rawSig := c.Get(HeaderSignature)
	if rawID == "" && rawSig == "" {
		return c.Next()
	}

	identity, err := domain.ParseAddress(rawID)
	if err != nil {
		return writeError(c, domain.ErrMissingSignature)
	}
	sig, err := hex.DecodeString(rawSig)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return writeError(c, domain.ErrMissingSignature)
	}
	payload := SigningPayload(c.Method(), c.Path(), c.Body())
	if !ed25519.Verify(ed25519.PublicKey(identity[:]), payload, sig) {
		return writeError(c, domain.ErrMissingSignature)
	}

	c.Locals(identityLocal, identity)
	c.SetUserContext(domain.WithSigners(c.UserContext(), identity))
	return c.Next()
}

// callerOf returns the verified identity of the request, if any.
func callerOf(c *fiber.Ctx) (domain.Address, bool) {
	id, ok := c.Locals(identityLocal).(domain.Address)
	return id, ok
}
