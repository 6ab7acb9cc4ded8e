package ports

// PasswordHasher abstracts the one-way salted hash primitive so the services
// stay independent of the algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)
	// Check compares a plaintext password against a hash in constant time.
	Check(password, hash string) bool
}
