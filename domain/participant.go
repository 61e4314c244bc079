// Package domain contains core concepts of the chat system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

// CurrentUserID is reserved for the local user of the chat view.
// Every message authored by this id is a self message.
const CurrentUserID = "current"

// Participant is a chat member as shown in the roster and on each message.
// Participants are immutable once the directory is loaded.
type Participant struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Title    string `yaml:"title"`
	Workshop string `yaml:"workshop"`
	Avatar   string `yaml:"avatar"`
}

func (p Participant) IsCurrentUser() bool {
	return p.ID == CurrentUserID
}

// Label is the "workshop - title" line displayed next to a name.
func (p Participant) Label() string {
	switch {
	case p.Workshop == "":
		return p.Title
	case p.Title == "":
		return p.Workshop
	default:
		return p.Workshop + " - " + p.Title
	}
}
