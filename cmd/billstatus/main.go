package main

import (
	"context"

	"govinfo-billstatus/cmd/billstatus/commands"
	"govinfo-billstatus/internal/components/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext(context.Background())
	commands.ExecuteContext(ctx)
}
