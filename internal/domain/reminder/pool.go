package reminder

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// DefaultMessages is the built-in reminder pool.
//
//nolint:gochecknoglobals // Read-only default, copied by NewPool.
var DefaultMessages = []string{
	"Drink some water!",
	"Don't forget to drink water!",
	"Time to hydrate!",
	"Remember to have a glass of water!",
}

var (
	// ErrEmptyPool is returned when a pool would have no messages.
	ErrEmptyPool = errors.New("reminder pool must not be empty")
	// ErrBlankMessage is returned when a pool message is blank.
	ErrBlankMessage = errors.New("reminder message must not be blank")
)

// Pool is a fixed, non-empty, ordered set of reminder messages.
// It is safe for concurrent use because it never changes after NewPool.
type Pool struct {
	// messages is a private copy of the caller's slice.
	messages []string
}

// NewPool copies messages into a new Pool.
func NewPool(messages []string) (*Pool, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyPool
	}

	for _, m := range messages {
		if strings.TrimSpace(m) == "" {
			return nil, ErrBlankMessage
		}
	}

	return &Pool{
		messages: append([]string(nil), messages...),
	}, nil
}

// Default returns a pool of DefaultMessages.
func Default() *Pool {
	return &Pool{
		messages: append([]string(nil), DefaultMessages...),
	}
}

// Len returns the number of messages.
func (p *Pool) Len() int {
	return len(p.messages)
}

// Pick selects a message using intn, which must return a value in [0, n).
// A nil intn uses math/rand/v2.IntN.
func (p *Pool) Pick(intn func(n int) int) string {
	if intn == nil {
		intn = rand.IntN
	}

	return p.messages[intn(len(p.messages))]
}
