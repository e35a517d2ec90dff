package main

import (
	"github.com/caldera-cms/vers/cmd"
)

func main() {
	cmd.Execute()
}
