package domain

import (
	"chat-feed/errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Directory is the fixed catalog of simulated participants and the pool
// of lines they can say. It is read-only once built.
type Directory struct {
	current Participant
	peers   []Participant
	content []string
}

func NewDirectory(current Participant, peers []Participant, content []string) (*Directory, error) {
	current.ID = CurrentUserID

	peers = lo.Filter(peers, func(p Participant, _ int) bool {
		return !p.IsCurrentUser()
	})
	if duplicates := lo.FindDuplicatesBy(peers, func(p Participant) string { return p.ID }); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrDuplicateParticipant, duplicates[0].ID)
	}

	lines := lo.FilterMap(content, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	if len(peers) == 0 || len(lines) == 0 {
		return nil, errors.ErrEmptyDirectory
	}

	return &Directory{
		current: current,
		peers:   slices.Clone(peers),
		content: lines,
	}, nil
}

func (d *Directory) CurrentUser() Participant {
	return d.current
}

func (d *Directory) Peers() []Participant {
	return slices.Clone(d.peers)
}

func (d *Directory) PeerCount() int {
	return len(d.peers)
}

func (d *Directory) Peer(i int) Participant {
	return d.peers[i]
}

func (d *Directory) ContentCount() int {
	return len(d.content)
}

func (d *Directory) Content(i int) string {
	return d.content[i]
}

// Online lists everybody shown as connected: the current user first, then peers.
func (d *Directory) Online() []Participant {
	return append([]Participant{d.current}, d.peers...)
}

func (d *Directory) Lookup(id string) (Participant, bool) {
	if id == CurrentUserID {
		return d.current, true
	}
	return lo.Find(d.peers, func(p Participant) bool { return p.ID == id })
}
