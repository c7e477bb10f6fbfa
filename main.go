package main

import (
	"context"

	"github.com/mblarsen/update-notifier-tray/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
