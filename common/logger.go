// The common package holds types and variables that are common to
// multiple parts of partita, and generically useful.
package common

import (
	"io"
	"log"
)

// Discard is the logger used by all partita packages when none was
// configured. It is bound to io.Discard, which keeps it blissfully
// quiet. Should you wish to see logging output, configure any logging
// implementation that matches the StdLogger interface.
var Discard StdLogger = log.New(io.Discard, "", 0)

// StdLogger is the interface you need to implement on whatever logger
// you hand to partita. Go's own built in log package is fine, but you
// could use zerolog's standard facade or wrap something incompatible
// that you like!
type StdLogger interface {
	Print(v ...any)
	Printf(format string, v ...any)
	Println(v ...any)
}
