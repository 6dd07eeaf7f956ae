package ports

import "context"

// PasswordHasher is a one-way, salted credential hash. Hash accepts a
// context because implementations may queue work behind a bounded pool.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare returns nil iff plaintext matches the hash's origin.
	Compare(hash, plaintext string) error
}
