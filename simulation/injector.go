package simulation

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"time"
)

type InjectorState int

const (
	Idle InjectorState = iota
	Active
)

func (s InjectorState) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// PeerInjector decides, tick after tick, whether a simulated peer speaks.
// It stays Idle until the history is seeded.
type PeerInjector struct {
	directory       *domain.Directory
	random          contract.Random
	skipProbability float64
	state           InjectorState
}

func NewPeerInjector(directory *domain.Directory, random contract.Random, skipProbability float64) *PeerInjector {
	return &PeerInjector{
		directory:       directory,
		random:          random,
		skipProbability: skipProbability,
		state:           Idle,
	}
}

// Activate moves the injector to Active. It reports false when it already was.
func (p *PeerInjector) Activate() bool {
	if p.state == Active {
		return false
	}
	p.state = Active
	return true
}

func (p *PeerInjector) State() InjectorState {
	return p.state
}

// Tick rolls the dice for one injection tick. A roll at or below the skip
// probability keeps the room silent; otherwise a random peer says a random line.
// An Idle injector never rolls.
func (p *PeerInjector) Tick(now time.Time) (message domain.Message, roll float64, ok bool) {
	if p.state != Active {
		return domain.Message{}, 0, false
	}

	roll = p.random.Float64()
	if roll <= p.skipProbability {
		return domain.Message{}, roll, false
	}

	peer := p.directory.Peer(p.random.IntN(p.directory.PeerCount()))
	content := p.directory.Content(p.random.IntN(p.directory.ContentCount()))
	return domain.NewMessage(peer, content, now), roll, true
}
