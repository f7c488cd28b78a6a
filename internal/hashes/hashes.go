// Package hashes maps configuration names to challenge hash constructors.
package hashes

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Default is the hash used when none is configured.
const Default = "sha256"

var registry = map[string]func() hash.Hash{
	"sha256":  sha256.New,
	"blake2b": newBlake2b256,
	"sha3":    sha3.New256,
}

// New returns the constructor registered under name. An empty name selects Default.
func New(name string) (func() hash.Hash, error) {
	if name == "" {
		name = Default
	}
	newHash, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown hash %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
	return newHash, nil
}

// Names returns the registered hash names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newBlake2b256() hash.Hash {
	// blake2b.New256 only fails for keys longer than 64 bytes.
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}
