// Package devices implements mix.IODevice peripherals: a line printer /
// typewriter console, a sequential tape unit and a card reader, each
// block-oriented per Knuth's device model.
package devices

import (
	"bufio"
	"io"
	"sync"

	"github.com/knuth-taocp/mixes/mix"
)

// ConsoleBlockSize is the fixed transfer unit for a ConsoleDevice, in
// words: one word (five characters) per OUT, and every Write ends its
// output with a newline.
const ConsoleBlockSize = 1

// ConsoleDevice models a line-buffered typewriter: OUT writes a line of
// characters decoded through the MIX alphabet, IN is unsupported (console
// input belongs to the card reader in this simulator).
type ConsoleDevice struct {
	mu  sync.Mutex
	out *bufio.Writer
}

// NewConsoleDevice wraps w as the console's output stream.
func NewConsoleDevice(w io.Writer) *ConsoleDevice {
	return &ConsoleDevice{out: bufio.NewWriter(w)}
}

func (c *ConsoleDevice) Read(buf []mix.Word) error {
	return mix.NewError(mix.ErrIOError, 0, "console device does not support input")
}

func (c *ConsoleDevice) Write(data []mix.Word) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, w := range data {
		for b := 1; b < w.Len(); b++ {
			ch, ok := mix.ByteToChar(w.Byte(b))
			if !ok {
				ch = '?'
			}
			if _, err := c.out.WriteRune(ch); err != nil {
				return i, err
			}
		}
	}
	if err := c.out.WriteByte('\n'); err != nil {
		return len(data), err
	}
	return len(data), c.out.Flush()
}

func (c *ConsoleDevice) Control(m int64) error {
	return nil
}

func (c *ConsoleDevice) IsBusy() bool  { return false }
func (c *ConsoleDevice) IsReady() bool { return true }
func (c *ConsoleDevice) BlockSize() int {
	return ConsoleBlockSize
}
