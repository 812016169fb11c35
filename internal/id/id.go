// Package id generates prefixed identifiers for stored entities.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each stored entity kind.
const (
	PrefixUser         = "usr"
	PrefixVideo        = "vid"
	PrefixPost         = "post"
	PrefixComment      = "cmt"
	PrefixLike         = "like"
	PrefixSubscription = "sub"
	PrefixPlaylist     = "pl"
	PrefixToken        = "tok"
)

// Generate creates a prefixed unique ID using NanoID, e.g. "vid-V1StGXR8_Z5jdHi6B-myT".
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
