package services

import (
	"context"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/logging"
)

// logFailure logs user mistakes at warn and everything else at error.
func logFailure(ctx context.Context, log logging.Logger, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if common.IsUserError(err) {
		log.Warn(ctx, msg, args...)
		return
	}
	log.Error(ctx, msg, args...)
}
