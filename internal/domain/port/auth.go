package port

import "time"

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
}
