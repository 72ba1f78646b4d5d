// Package obfuscate turns raw client addresses into opaque tokens. The
// transform is deterministic under one secret, so the same visitor yields
// the same token within a deployment, but the address cannot be read back
// without the secret.
package obfuscate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

type HMACObfuscator struct {
	secret []byte
}

func NewHMAC(secret string) *HMACObfuscator {
	return &HMACObfuscator{secret: []byte(secret)}
}

func (o *HMACObfuscator) Obfuscate(raw string) string {
	mac := hmac.New(sha256.New, o.secret)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
