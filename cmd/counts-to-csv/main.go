package main

import (
	"github.com/swemeshy/counts-to-csv/internal/app"
	"github.com/swemeshy/counts-to-csv/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
