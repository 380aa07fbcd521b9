package devices

import (
	"sync"

	"github.com/knuth-taocp/mixes/mix"
)

// CardReaderBlockSize is a standard 80-column punch card expressed as 16
// MIX words of 5 characters each.
const CardReaderBlockSize = 16

// CardReaderDevice feeds pre-loaded decks of words to IN requests. OUT
// (punching) is not supported.
type CardReaderDevice struct {
	mu   sync.Mutex
	deck [][]mix.Word // each entry is one card's worth of words
	pos  int
}

// NewCardReaderDevice returns a reader preloaded with deck, where each
// element is exactly CardReaderBlockSize words (one card).
func NewCardReaderDevice(deck [][]mix.Word) *CardReaderDevice {
	return &CardReaderDevice{deck: deck}
}

func (c *CardReaderDevice) Read(buf []mix.Word) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pos >= len(c.deck) {
		return mix.NewError(mix.ErrIOError, 0, "card reader: deck exhausted")
	}
	card := c.deck[c.pos]
	c.pos++
	copy(buf, card)
	return nil
}

func (c *CardReaderDevice) Write(data []mix.Word) (int, error) {
	return 0, mix.NewError(mix.ErrIOError, 0, "card reader does not support output")
}

func (c *CardReaderDevice) Control(m int64) error {
	return nil
}

func (c *CardReaderDevice) IsBusy() bool { return false }

func (c *CardReaderDevice) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos < len(c.deck)
}

func (c *CardReaderDevice) BlockSize() int {
	return CardReaderBlockSize
}
