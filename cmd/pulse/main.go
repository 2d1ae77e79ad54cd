// Command pulse runs the UCI engine front-end over stdin/stdout.
package main

import (
	"os"

	"github.com/nazarovsa/pulsego/uci"
)

func main() {
	uci.Run(os.Stdin, os.Stdout)
}
