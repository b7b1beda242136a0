package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeRecordID computes a stable record ID from the mod name and the
// target directory. The ID names the record file.
func ComputeRecordID(mod, target string) string {
	hash := sha256.Sum256([]byte(mod + "|" + target))
	return hex.EncodeToString(hash[:])[:16]
}
