package recipients

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrOpenRecipients = errors.New("failed to open recipients file")

// SkippedLine is a non-blank input line that did not parse as an address.
type SkippedLine struct {
	Line int
	Text string
}

// List is the ordered recipient sequence read from a file. Duplicates are kept.
type List struct {
	Addresses []common.Address
	Skipped   []SkippedLine

	// ReadErr is set when reading stopped early; Addresses holds what was read before it.
	ReadErr error
}

// Load reads one address per line from path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenRecipients, path, err)
	}
	defer f.Close()

	return Parse(f), nil
}

// Parse reads addresses from r in order. Blank lines are ignored and malformed
// lines are recorded in Skipped.
func Parse(r io.Reader) *List {
	list := &List{Addresses: make([]common.Address, 0)}

	rd := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := rd.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			list.add(lineNo, line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				list.ReadErr = err
			}
			break
		}
	}
	return list
}

func (l *List) add(lineNo int, line string) {
	text := strings.TrimSpace(line)
	if text == "" {
		return
	}
	addr, ok := ParseAddress(text)
	if !ok {
		l.Skipped = append(l.Skipped, SkippedLine{Line: lineNo, Text: text})
		return
	}
	l.Addresses = append(l.Addresses, addr)
}

// ParseAddress accepts a 20-byte hex address with or without the 0x prefix.
func ParseAddress(s string) (common.Address, bool) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}
