package keys

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Deterministic record addressing. A key is a pure function of a purpose tag
// and its seeds; it carries no ownership, only a collision-resistant lookup
// contract.

func derive(tag string, seeds ...[]byte) string {
	h := sha256.New()
	h.Write([]byte(tag))
	for _, seed := range seeds {
		h.Write([]byte{0})
		h.Write(seed)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func numeric(id uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, id)
	return buf
}

func Registry() string {
	return derive("focus_program")
}

func VaultAuthority() string {
	return derive("vault_authority")
}

func Profile(owner string) string {
	return derive("user_profile", []byte(owner))
}

func Commitment(owner string, commitmentID uint64) string {
	return derive("commitment", []byte(owner), numeric(commitmentID))
}

func Vault(owner string, commitmentID uint64) string {
	return derive("vault", []byte(owner), numeric(commitmentID))
}

func Session(commitmentKey string, sessionID uint64) string {
	return derive("session", []byte(commitmentKey), numeric(sessionID))
}
