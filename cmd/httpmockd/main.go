// Command httpmockd runs the mock server as a standalone process, for
// suites that drive it from outside the language the tests are written in.
package main

import (
	"fmt"
	"os"

	"github.com/utkarshgupta137/httpmock/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
