package main

import (
	"github.com/aacfactory/sortedlist/cmd/sortedbench/cmd"
)

func main() {
	cmd.Execute()
}
