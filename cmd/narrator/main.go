package main

import (
	"github.com/eleven-am/battle-narrator/internal/bootstrap"
)

func main() {
	bootstrap.Run()
}
