package application

import (
	"context"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// runAtomic executes fn as one unit of work and logs its outcome. Business
// rejections are logged at warn level, anything else at error level.
func runAtomic(ctx context.Context, store domain.Store, op string, fields []zap.Field, fn func(ctx context.Context, s domain.Session) error) error {
	err := store.Atomic(ctx, fn)
	if err != nil {
		fields = append(fields, zap.Error(err))
		if isInternal(err) {
			log.Error(op+": Rolling back unit of work", fields...)
		} else {
			log.Warn(op+": Rolling back unit of work", fields...)
		}
		return err
	}
	log.Info(op+": Unit of work committed successfully", fields...)
	return nil
}

func isInternal(err error) bool {
	return domain.CategoryOf(err) == domain.CategoryInternal
}
