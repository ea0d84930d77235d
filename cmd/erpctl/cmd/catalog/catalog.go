// Package catalog holds the master data and order commands.
package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/pkg/sdk"
)

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
