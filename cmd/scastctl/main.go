// The scastctl command controls a running slidecast player daemon
package main

import (
	"github.com/slidecast/slidecast/internal/scastctl/cmd"
)

func main() {
	cmd.Execute()
}
