// Command rdspeer is a small CLI host program for rdscom: it can run the
// library's loopback demo scenarios or act as a websocket peer. Grounded on
// the teacher's cmd/vango command tree (a shared root command in main.go,
// one file per subcommand).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rdspeer",
		Short: "rdscom peer: run demo scenarios or talk to another peer",
	}
	root.AddCommand(newLoopbackDemoCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newDialCmd())
	return root
}
