package hash

// Hash hashes plaintext secrets and verifies them against stored hashes.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
