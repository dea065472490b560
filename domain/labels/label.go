// Package labels contains the sensitivity label domain model: labels,
// protection settings, the priority tier order, validation, and merging.
package labels

import (
	"time"
)

// ProtectionSettings holds the policy flags attached to a label.
// It has no lifecycle of its own; it is owned by exactly one Label.
type ProtectionSettings struct {
	RequireEncryption bool       `json:"require_encryption"`
	PreventExtraction bool       `json:"prevent_extraction"`
	PreventCopyPaste  bool       `json:"prevent_copy_paste"`
	PreventGrounding  bool       `json:"prevent_grounding"`
	AllowedUsers      []string   `json:"allowed_users,omitempty"`
	AllowedGroups     []string   `json:"allowed_groups,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the settings carry an expiration in the past.
func (p *ProtectionSettings) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// AllowsUser reports whether the given user passes the allow-list check.
// An empty allow-list admits everyone.
func (p *ProtectionSettings) AllowsUser(user string, groups []string) bool {
	if len(p.AllowedUsers) == 0 && len(p.AllowedGroups) == 0 {
		return true
	}
	for _, u := range p.AllowedUsers {
		if u == user {
			return true
		}
	}
	for _, g := range p.AllowedGroups {
		for _, member := range groups {
			if g == member {
				return true
			}
		}
	}
	return false
}

// Label is a named policy bundle with a priority tier and protection flags.
// The ID is immutable after creation; Name, Description, Priority and the
// protection settings may change via update.
type Label struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Priority         PriorityTier       `json:"priority"`
	Protection       ProtectionSettings `json:"protection"`
	CustomProperties map[string]string  `json:"custom_properties,omitempty"`
	Active           bool               `json:"active"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// Touch refreshes UpdatedAt, preserving CreatedAt.
func (l *Label) Touch(now time.Time) {
	l.UpdatedAt = now
}

// Clone returns a deep copy of the label so callers can mutate it without
// aliasing stored state.
func (l *Label) Clone() *Label {
	out := *l
	out.Protection.AllowedUsers = append([]string(nil), l.Protection.AllowedUsers...)
	out.Protection.AllowedGroups = append([]string(nil), l.Protection.AllowedGroups...)
	if l.Protection.ExpiresAt != nil {
		t := *l.Protection.ExpiresAt
		out.Protection.ExpiresAt = &t
	}
	if l.CustomProperties != nil {
		out.CustomProperties = make(map[string]string, len(l.CustomProperties))
		for k, v := range l.CustomProperties {
			out.CustomProperties[k] = v
		}
	}
	return &out
}
