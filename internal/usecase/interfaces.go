package usecase

// TokenIssuer mints and verifies session tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID string) (string, error)
	Verify(token string) (string, error)
}
