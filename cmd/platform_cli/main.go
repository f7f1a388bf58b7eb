package main

import (
	"context"
	"platform-cli/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
