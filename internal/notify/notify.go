// Package notify decides whether a real-time event deserves a visible toast.
package notify

import (
	"net/url"
	"strings"
)

// ContactsPath is the view that shows a single conversation.
const ContactsPath = "/contacts"

// subjectParam is the query parameter the contacts view keeps its active contact in.
const subjectParam = "id"

// Navigation is what a client is looking at when an event arrives.
type Navigation struct {
	Path          string `json:"path"`
	ActiveSubject string `json:"activeSubject"`
}

// Event is the minimum a new message event must carry to be filtered.
type Event interface {
	SubjectID() string
}

// NavigationFromPath builds a snapshot from a view path, reading the active
// contact from the query string when none is given.
func NavigationFromPath(path, activeSubject string) Navigation {
	if activeSubject == "" {
		if u, err := url.Parse(path); err == nil {
			activeSubject = u.Query().Get(subjectParam)
		}
	}
	return Navigation{Path: path, ActiveSubject: activeSubject}
}

// ShouldNotify suppresses a notification only when the contacts view is open
// on exactly the event's contact. Events without a contact always notify.
func ShouldNotify(e Event, nav Navigation) bool {
	if e == nil {
		return true
	}
	subject := e.SubjectID()
	if subject == "" {
		return true
	}
	if !isContactsView(nav.Path) {
		return true
	}
	return nav.ActiveSubject != subject
}

func isContactsView(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	p := u.Path
	return p == ContactsPath || strings.HasPrefix(p, ContactsPath+"/")
}
