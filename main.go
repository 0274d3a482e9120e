package main

import (
	"fmt"

	"sblend/cmd"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
