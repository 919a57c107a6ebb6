package secondary

import "gitlab.com/codelab-2026.net/internal/domain"

// UserPort looks up staff accounts for privileged-token issuance.
type UserPort interface {
	GetByUserName(username string) (*domain.StaffUser, error)
}
