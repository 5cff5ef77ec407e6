package lyrics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
)

// fingerprintVersion is folded into every key; bump it when the cached
// result shape changes.
const fingerprintVersion = "v2"

// Fingerprint derives the cache key for a request from its identity-relevant
// fields only: normalized artist + song and the timestamps flag (which
// changes the eligible provider pool and thus the result shape). FastMode,
// custom sequences and enrichment flags only affect how a result is obtained
// or decorated, so two requests differing only in those share one entry.
func (r LyricsRequest) Fingerprint() string {
	payload := fmt.Sprintf("%s|%s|%s|%t",
		fingerprintVersion,
		normalizeKeyPart(r.Artist),
		normalizeKeyPart(r.Song),
		r.WantTimestamps,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func normalizeKeyPart(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
