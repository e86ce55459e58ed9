package main

import (
	"webcache/cmd/webcache-cli/commands"
	"webcache/lib/osutil"
)

func main() {
	commands.ExecuteContext(osutil.SignalContext())
}
