package cmdmend

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// HashContent computes the xxHash of content and returns it as a hex
// string. Cache entries are content-addressed with this hash so
// staleness is detectable without an external signal.
func HashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
