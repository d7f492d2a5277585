package access

import (
	"sort"

	"github.com/contentdeck/contentdeck/internal/db/controller/accessrule"
	"github.com/contentdeck/contentdeck/internal/db/controller/role"
)

// EffectivePermissions returns the sorted union of permission codes a user
// could hold in at least one scope. Scopes are deliberately ignored: the
// result answers "what can this user ever do", not "what can they do
// here", and is what token issuance embeds as the permissions claim.
//
// A user without rules gets an empty slice, not nil, so the JSON form is
// always an array.
func (s *Service) EffectivePermissions(userID string) ([]string, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}
	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	rules, err := accessrule.GetByUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	seenRoles := make(map[uint]struct{})

	for _, r := range rules {
		if _, done := seenRoles[r.RoleID]; done {
			continue
		}
		seenRoles[r.RoleID] = struct{}{}

		perms, err := role.Permissions(s.db, r.RoleID)
		if err != nil {
			return nil, err
		}
		for _, p := range perms {
			seen[p.Code] = struct{}{}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes, nil
}
