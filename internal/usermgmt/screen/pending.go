package screen

import (
	"strings"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
)

// PendingSet tracks the (email, role) pairs whose toggle is in flight. Emails
// compare case-insensitively. It is not safe for concurrent use; Screen guards
// it with its own mutex.
type PendingSet struct {
	byEmail map[string]domain.RoleSet
}

func NewPendingSet() *PendingSet {
	return &PendingSet{byEmail: make(map[string]domain.RoleSet)}
}

func pendingKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Add marks the pair pending and reports whether it was not already.
func (p *PendingSet) Add(email string, role domain.Role) bool {
	k := pendingKey(email)
	roles := p.byEmail[k]
	if roles.Has(role) {
		return false
	}
	p.byEmail[k] = roles.Add(role)
	return true
}

func (p *PendingSet) Remove(email string, role domain.Role) {
	k := pendingKey(email)
	roles := p.byEmail[k].Remove(role)
	if roles.IsEmpty() {
		delete(p.byEmail, k)
		return
	}
	p.byEmail[k] = roles
}

func (p *PendingSet) Has(email string, role domain.Role) bool {
	return p.byEmail[pendingKey(email)].Has(role)
}

// Roles returns the roles pending for email.
func (p *PendingSet) Roles(email string) domain.RoleSet {
	return p.byEmail[pendingKey(email)]
}

// Len counts pending pairs across all users.
func (p *PendingSet) Len() int {
	n := 0
	for _, roles := range p.byEmail {
		n += roles.Len()
	}
	return n
}
