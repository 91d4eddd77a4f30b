package entitlement

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"codeberg.org/pixelgate/server/internal/plans"
)

// length of the hex fingerprint kept from an API key
const keyFingerprintLen = 16

// HeaderProvider reads the reseller headers
type HeaderProvider struct {
	plans *plans.Table
}

func NewHeaderProvider(table *plans.Table) *HeaderProvider {
	return &HeaderProvider{plans: table}
}

// never fails; an unknown plan hint degrades to the default plan
func (p *HeaderProvider) Resolve(r *http.Request) (*CallerContext, error) {
	caller := &CallerContext{
		Plan: p.plans.Resolve(r.Header.Get(HeaderPlan)),
	}

	caller.CallerID, caller.Source = identify(r)
	return caller, nil
}

func identify(r *http.Request) (string, Source) {
	if user := strings.TrimSpace(r.Header.Get(HeaderUser)); user != "" {
		return user, SourceUser
	}

	if key := strings.TrimSpace(r.Header.Get(HeaderAPIKey)); key != "" {
		return Fingerprint(key), SourceAPIKey
	}

	return "", SourceAddress
}

// derives a stable caller id from an API key without keeping the key itself
func Fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key_" + hex.EncodeToString(sum[:])[:keyFingerprintLen]
}
