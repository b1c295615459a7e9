package domain

import (
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/sid"
	"github.com/cloudscheduler/console/pkg/transaction"
)

type Service struct {
	Logger *log.Logger
	Sid    *sid.Sid
	Tx     transaction.Transaction
}

func NewService(log *log.Logger, s *sid.Sid, tx transaction.Transaction) *Service {
	return &Service{
		Logger: log,
		Sid:    s,
		Tx:     tx,
	}
}
