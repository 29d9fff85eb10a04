package command

import "strings"

// AdminSet answers whether a nick holds bot admin privileges. Membership is
// case-insensitive and fixed at startup.
type AdminSet struct {
	members map[string]struct{}
}

func NewAdminSet(nicks []string) *AdminSet {
	members := make(map[string]struct{}, len(nicks))
	for _, nick := range nicks {
		nick = strings.ToLower(strings.TrimSpace(nick))
		if nick == "" {
			continue
		}
		members[nick] = struct{}{}
	}
	return &AdminSet{members: members}
}

func (s *AdminSet) IsAdmin(nick string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[strings.ToLower(strings.TrimSpace(nick))]
	return ok
}
