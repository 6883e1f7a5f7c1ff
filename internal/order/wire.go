package order

import (
	"ordertrack/internal/kvstore"
	"ordertrack/internal/order/controller"
	"ordertrack/internal/order/repository"
	"ordertrack/internal/order/service"

	"go.uber.org/zap"
)

// Module bundles the order lifecycle pieces both binaries draw from: the
// bot uses Service, the read API uses Controller, and Repository is
// shared with the retention sweeper.
type Module struct {
	Repository *repository.OrderListRepository
	Service    *service.LifecycleService
	Controller *controller.OrderController
}

func NewModule(store kvstore.Store, logger *zap.Logger) *Module {
	repo := repository.NewOrderListRepository(store)
	svc := service.NewLifecycleService(repo, logger, nil)

	return &Module{
		Repository: repo,
		Service:    svc,
		Controller: controller.NewOrderController(svc, logger),
	}
}
