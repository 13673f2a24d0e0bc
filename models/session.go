package models

// Session is the authenticated user context returned by the server after a
// browser login. The token is a JWT whose expiry the client inspects locally
// (without verifying the signature — the server remains the validator).
type Session struct {
	Success bool   `json:"success"`
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}
