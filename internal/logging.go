package internal

import (
	"io"
	"log"
	"os"
)

// InitLogging configures the standard logger for the CLI. Debug adds file
// and line to every entry.
func InitLogging(debug bool) {
	initLogging(os.Stdout, debug)
}

func initLogging(w io.Writer, debug bool) {
	log.SetOutput(w)
	flags := log.LstdFlags | log.Lmicroseconds
	if debug {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
}
