package main

import (
	"github.com/collegecounselor/counselor/cmd"
)

func main() {
	cmd.Execute()
}
