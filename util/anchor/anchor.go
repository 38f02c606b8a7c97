// package anchor implements a minimal terminal status area:
// permanent log lines scroll above a block of anchored,
// in-place-updated "lot" lines, one per pipeline stage.
package anchor

import (
	"fmt"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
)

const (
	Red    = color.FgRed
	Green  = color.FgGreen
	Yellow = color.FgYellow
	Blue   = color.FgBlue
)

type Anchor struct {
	mutex    sync.Mutex
	accent   *color.Color
	lots     []*Lot
	index    map[string]*Lot
	rendered int
}

type Lot struct {
	anchor  *Anchor
	label   string
	message string
	closed  bool
}

func New(attributes ...color.Attribute) *Anchor {
	return &Anchor{
		accent: color.New(attributes...),
		index:  map[string]*Lot{},
	}
}

// Printf emits a permanent line above the anchored block
func (anchor *Anchor) Printf(format string, args ...interface{}) {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()
	anchor.redraw(fmt.Sprintf(format, args...))
}

// AnchorPrintf emits a permanent, accent-colored line,
// used for warnings and failures
func (anchor *Anchor) AnchorPrintf(format string, args ...interface{}) {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()
	anchor.redraw(anchor.accent.Sprintf(format, args...))
}

// Lot returns the (unique) status line for the given label,
// creating it on first use
func (anchor *Anchor) Lot(label string) *Lot {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()

	if lot, ok := anchor.index[label]; ok {
		return lot
	}

	lot := &Lot{anchor: anchor, label: label}
	anchor.index[label] = lot
	anchor.lots = append(anchor.lots, lot)
	return lot
}

// Wipe clears every anchored line, leaving permanent
// output untouched
func (anchor *Anchor) Wipe() {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()

	for _, lot := range anchor.lots {
		lot.closed = true
	}
	anchor.redraw()
}

// redraw repaints the anchored block, optionally emitting
// permanent lines first; callers hold the mutex
func (anchor *Anchor) redraw(permanent ...string) {
	if anchor.rendered > 0 {
		cursor.ClearLinesUp(anchor.rendered)
		cursor.StartOfLine()
	}

	for _, line := range permanent {
		fmt.Println(line)
	}

	count := 0
	for _, lot := range anchor.lots {
		if lot.closed {
			continue
		}
		fmt.Printf("%s %s\n", anchor.accent.Sprintf("[%s]", lot.label), lot.message)
		count++
	}
	anchor.rendered = count
}

func (lot *Lot) Printf(format string, args ...interface{}) {
	lot.anchor.mutex.Lock()
	defer lot.anchor.mutex.Unlock()

	lot.message = fmt.Sprintf(format, args...)
	lot.closed = false
	lot.anchor.redraw()
}

func (lot *Lot) Print(message string) {
	lot.Printf("%s", message)
}

// Wipe blanks the lot line without removing it
func (lot *Lot) Wipe() {
	lot.anchor.mutex.Lock()
	defer lot.anchor.mutex.Unlock()

	lot.message = ""
	lot.anchor.redraw()
}

// Close removes the lot line, optionally leaving a
// permanent summary behind
func (lot *Lot) Close(summary ...string) {
	lot.anchor.mutex.Lock()
	defer lot.anchor.mutex.Unlock()

	lot.closed = true
	if len(summary) > 0 {
		lot.anchor.redraw(fmt.Sprintf("%s %s", lot.anchor.accent.Sprintf("[%s]", lot.label), summary[0]))
		return
	}
	lot.anchor.redraw()
}
