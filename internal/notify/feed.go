package notify

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/yukikurage/planner-api/internal/models"
)

// Derived entry types, reported in Entry.Type.
const (
	TypePendingTasks  = "pending_tasks"
	TypeEvent         = "event"
	TypeTeamInvite    = "team_invite"
	TypePartnerInvite = "partner_invite"
)

type Entry struct {
	ID        FeedID
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

func (e Entry) MarshalJSON() ([]byte, error) {
	_, derived := e.ID.(DerivedID)
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Derived   bool      `json:"derived"`
		Type      string    `json:"type"`
		Title     string    `json:"title"`
		Message   string    `json:"message"`
		Read      bool      `json:"read"`
		CreatedAt time.Time `json:"created_at"`
	}{e.ID.String(), derived, e.Type, e.Title, e.Message, e.Read, e.CreatedAt})
}

// Feed is the merged notification list, newest first.
type Feed struct {
	Entries []Entry
}

// Build merges persisted rows and derived entries and sorts the result by
// creation time descending, breaking ties on the id string.
func Build(persisted []models.Notification, derived []Entry) *Feed {
	entries := make([]Entry, 0, len(persisted)+len(derived))
	for _, n := range persisted {
		entries = append(entries, FromRow(n))
	}
	entries = append(entries, derived...)

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
	return &Feed{Entries: entries}
}

// MarkRead flags the entry locally. It reports whether the id was found.
func (f *Feed) MarkRead(id FeedID) bool {
	key := id.String()
	for i := range f.Entries {
		if f.Entries[i].ID.String() == key {
			f.Entries[i].Read = true
			return true
		}
	}
	return false
}

func (f *Feed) UnreadCount() int {
	n := 0
	for _, e := range f.Entries {
		if !e.Read {
			n++
		}
	}
	return n
}

func (f *Feed) MarshalJSON() ([]byte, error) {
	entries := f.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(struct {
		Entries []Entry `json:"entries"`
		Unread  int     `json:"unread"`
	}{entries, f.UnreadCount()})
}

func FromRow(n models.Notification) Entry {
	return Entry{
		ID:        PersistedID{ID: n.ID},
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// PendingTasks summarises today's incomplete tasks. It returns false when there are none.
// The entry is keyed by the date so it keeps its id for the whole day.
func PendingTasks(count int64, today time.Time) (Entry, bool) {
	if count <= 0 {
		return Entry{}, false
	}
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	y, m, d := today.Date()
	return Entry{
		ID:        DerivedID{Kind: KindPendingTasks, SourceID: today.Format("20060102")},
		Type:      TypePendingTasks,
		Title:     "Pending tasks",
		Message:   fmt.Sprintf("You have %d %s left for %s", count, noun, today.Weekday()),
		CreatedAt: time.Date(y, m, d, 0, 0, 0, 0, today.Location()),
	}, true
}

func Event(ev models.CalendarEvent) Entry {
	msg := "Today"
	if ev.Time != nil {
		msg = "Today at " + *ev.Time
	}
	return Entry{
		ID:        DerivedID{Kind: KindEvent, SourceID: strconv.FormatUint(ev.ID, 10)},
		Type:      TypeEvent,
		Title:     ev.Title,
		Message:   msg,
		CreatedAt: ev.CreatedAt,
	}
}

func TeamInvite(inv models.Invite) Entry {
	team := "a team"
	if inv.Team != nil && inv.Team.Name != "" {
		team = inv.Team.Name
	}
	return Entry{
		ID:        DerivedID{Kind: KindTeamInvite, SourceID: strconv.FormatUint(inv.ID, 10)},
		Type:      TypeTeamInvite,
		Title:     "Team invitation",
		Message:   fmt.Sprintf("%s invited you to join %s", senderLabel(inv), team),
		CreatedAt: inv.CreatedAt,
	}
}

func PartnerInvite(inv models.Invite) Entry {
	return Entry{
		ID:        DerivedID{Kind: KindPartnerInvite, SourceID: strconv.FormatUint(inv.ID, 10)},
		Type:      TypePartnerInvite,
		Title:     "Partner invitation",
		Message:   fmt.Sprintf("%s wants to be your accountability partner", senderLabel(inv)),
		CreatedAt: inv.CreatedAt,
	}
}

func senderLabel(inv models.Invite) string {
	if inv.Sender != nil && inv.Sender.Email != "" {
		return inv.Sender.Email
	}
	return "Someone"
}
