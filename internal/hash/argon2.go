// Package hash computes and verifies salted password digests using Argon2id.
//
// Digests use the standard PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash) so they interoperate with other
// Argon2 implementations. Hashing the same password twice yields different
// digests because each call draws a fresh random salt.
package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Current hashing parameters. Changing them does not invalidate stored
// digests; Verify reads the parameters back out of each digest.
const (
	memoryKiB   = 64 * 1024
	iterations  = 1
	parallelism = 4
	saltLen     = 16
	keyLen      = 32
)

var errMalformed = errors.New("malformed digest")

// Hash returns the Argon2id digest of plaintext with a per-call random salt.
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plaintext), salt, iterations, memoryKiB, parallelism, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches the digest. All failure modes
// (wrong password, malformed digest, unknown variant) collapse to false;
// Verify never panics and never returns an error.
func Verify(digest, plaintext string) bool {
	if digest == "" || plaintext == "" {
		return false
	}
	p, salt, key, err := decode(digest)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(plaintext), salt, p.iterations, p.memory, p.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(got, key) == 1
}

// NeedsRehash reports whether the digest was produced with parameters weaker
// than the current ones. Malformed digests report false.
//
// Note: the login flow does not call this; it exists for an upgrade-on-login
// path that has never been wired in.
func NeedsRehash(digest string) bool {
	p, _, key, err := decode(digest)
	if err != nil {
		return false
	}
	return p.memory < memoryKiB || p.iterations < iterations || p.parallelism < parallelism || len(key) < keyLen
}

type params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decode(digest string) (params, []byte, []byte, error) {
	// Expected: ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash]
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params{}, nil, nil, errMalformed
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params{}, nil, nil, errMalformed
	}
	var p params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return params{}, nil, nil, errMalformed
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return params{}, nil, nil, errMalformed
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params{}, nil, nil, errMalformed
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params{}, nil, nil, errMalformed
	}
	return p, salt, key, nil
}
