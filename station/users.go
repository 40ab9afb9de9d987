/*
users.go - System identities and PIN access

PURPOSE:
  User management plus the PIN login the back office gates on. The PIN
  check is a plaintext local comparison; hardening it is an explicit
  non-goal for a single-session, single-tenant installation.

INVARIANT:
  At least one user must always remain. Deleting the last one is rejected
  outright, otherwise nobody could ever sign in again.
*/
package station

import "context"

// AuthenticateByPIN returns the user matching the PIN and records the login.
func (s *Station) AuthenticateByPIN(ctx context.Context, pin string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.snap.Users {
		if u.PIN == pin {
			s.recordLocked(u.Actor(), ActionLogin, "Successful system access")
			s.commitLocked(ctx, CollectionAuditLog)
			return u, nil
		}
	}
	return User{}, ErrInvalidPIN
}

// Logout records the end of a session. State-wise it is audit-only.
func (s *Station) Logout(ctx context.Context, actor Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordLocked(actor, ActionLogout, "User signed out from session")
	s.commitLocked(ctx, CollectionAuditLog)
}

// SaveUser creates the user when its ID is empty, otherwise overwrites.
func (s *Station) SaveUser(ctx context.Context, actor Actor, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := cloneSlice(s.snap.Users)
	if u.ID == "" {
		u.ID = s.ids.NewID()
		users = append(users, u)
	} else {
		idx := indexByID(users, u.ID, func(x User) string { return x.ID })
		if idx < 0 {
			return User{}, ErrUserNotFound
		}
		users[idx] = u
	}
	s.snap.Users = users

	s.recordLocked(actor, ActionUserManage, "System user roles or access changed")
	s.commitLocked(ctx, CollectionUsers, CollectionAuditLog)
	return u, nil
}

// DeleteUser removes a user, refusing to remove the last one standing.
func (s *Station) DeleteUser(ctx context.Context, actor Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snap.Users) == 1 {
		return ErrLastUser
	}
	idx := indexByID(s.snap.Users, id, func(u User) string { return u.ID })
	if idx < 0 {
		return ErrUserNotFound
	}

	users := cloneSlice(s.snap.Users)
	s.snap.Users = append(users[:idx], users[idx+1:]...)

	s.recordLocked(actor, ActionUserManage, "System user removed")
	s.commitLocked(ctx, CollectionUsers, CollectionAuditLog)
	return nil
}
