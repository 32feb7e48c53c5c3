package domain

import "context"

type signersKey struct{}

// WithSigners returns a context carrying the identities that authorized the
// current call. The transport layer sets it after verifying signatures.
func WithSigners(ctx context.Context, signers ...Address) context.Context {
	set := make(map[Address]struct{}, len(signers))
	for _, s := range SignersFromContext(ctx) {
		set[s] = struct{}{}
	}
	for _, s := range signers {
		set[s] = struct{}{}
	}
	out := make([]Address, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return context.WithValue(ctx, signersKey{}, out)
}

// SignersFromContext returns the verified signers, if any.
func SignersFromContext(ctx context.Context) []Address {
	signers, _ := ctx.Value(signersKey{}).([]Address)
	return signers
}

// HasSigner reports whether identity is among the verified signers.
func HasSigner(ctx context.Context, identity Address) bool {
	for _, s := range SignersFromContext(ctx) {
		if s == identity {
			return true
		}
	}
	return false
}
