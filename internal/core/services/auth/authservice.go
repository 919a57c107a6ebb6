package auth

import "context"

// IAuthService issues privileged tokens for staff accounts. Subjects
// never authenticate here; their identity comes from the host request
// context.
type IAuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}
