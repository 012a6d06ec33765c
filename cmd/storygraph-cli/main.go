package main

import (
	"context"
	"storygraph-backend/cmd/storygraph-cli/commands"
	"storygraph-backend/lib/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext(context.Background())
	commands.ExecuteContext(ctx)
}
