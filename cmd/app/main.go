package main

import (
	"github.com/kinopick/core/internal/app"
	"github.com/kinopick/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
