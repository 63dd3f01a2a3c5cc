// cmd/logan/main.go
package main

import (
	"logan/internal/appshell"
	"logan/internal/cli"
)

func main() {
	appshell.Main(cli.Execute)
}
