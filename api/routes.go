package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/account"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/goal"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/pouch"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/status"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/pouch-server/internal/handlers/v1/user"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("pouch-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))

	user.NewCreateUserHandler(r.Service.User).Register(humaAPI)
	user.NewGetUserHandler(r.Service.User).Register(humaAPI)

	account.NewCreateAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)
	account.NewDeactivateAccountHandler(r.Service.Account).Register(humaAPI)

	pouch.NewCreatePouchHandler(r.Service.Pouch).Register(humaAPI)
	pouch.NewListPouchesHandler(r.Service.Pouch).Register(humaAPI)
	pouch.NewSharePouchHandler(r.Service.Pouch).Register(humaAPI)

	goal.NewCreateGoalHandler(r.Service.Goal).Register(humaAPI)
	goal.NewUpdateGoalHandler(r.Service.Goal).Register(humaAPI)
	goal.NewListGoalsHandler(r.Service.Goal).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	transfer.NewCreateTransferHandler(r.Service.Transfer).Register(humaAPI)
	transfer.NewListTransfersHandler(r.Service.Transfer).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
