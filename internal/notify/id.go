// Package notify merges persisted notification rows with notifications
// derived at read time into one feed.
package notify

import (
	"fmt"
	"strconv"
	"strings"
)

// FeedID identifies a feed entry. It is either a PersistedID or a DerivedID.
type FeedID interface {
	String() string
	feedID()
}

// PersistedID points at a row in the notifications table.
type PersistedID struct {
	ID uint64
}

func (p PersistedID) String() string { return strconv.FormatUint(p.ID, 10) }
func (PersistedID) feedID()          {}

type Kind string

const (
	KindPendingTasks  Kind = "pending-tasks"
	KindEvent         Kind = "event"
	KindTeamInvite    Kind = "team-invite"
	KindPartnerInvite Kind = "partner-invite"
)

// kinds is ordered so that no entry is a prefix of a later one.
var kinds = []Kind{KindPendingTasks, KindTeamInvite, KindPartnerInvite, KindEvent}

// DerivedID names an entry synthesised from other data. The same source
// always yields the same id, so entries stay stable across fetches.
type DerivedID struct {
	Kind     Kind
	SourceID string
}

func (d DerivedID) String() string { return string(d.Kind) + "-" + d.SourceID }
func (DerivedID) feedID()          {}

// ParseFeedID is the inverse of String for both id forms.
func ParseFeedID(s string) (FeedID, error) {
	if s == "" {
		return nil, fmt.Errorf("empty notification id")
	}
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return PersistedID{ID: id}, nil
	}
	for _, k := range kinds {
		prefix := string(k) + "-"
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return DerivedID{Kind: k, SourceID: s[len(prefix):]}, nil
		}
	}
	return nil, fmt.Errorf("unrecognised notification id %q", s)
}
