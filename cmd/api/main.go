package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "smartlenderup-backend/internal/adapter/http"
	idemp "smartlenderup-backend/internal/adapter/middleware"
	"smartlenderup-backend/internal/adapter/repository/mysql"
	"smartlenderup-backend/internal/adapter/repository/rediscache"
	"smartlenderup-backend/internal/config"
	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/infrastructure/cache"
	"smartlenderup-backend/internal/infrastructure/db"
	"smartlenderup-backend/internal/infrastructure/lock"
	"smartlenderup-backend/internal/infrastructure/logging"
	ucApproval "smartlenderup-backend/internal/usecase/approval"
	ucClient "smartlenderup-backend/internal/usecase/client"
	ucFunding "smartlenderup-backend/internal/usecase/funding"
	ucLoan "smartlenderup-backend/internal/usecase/loan"
	ucOrg "smartlenderup-backend/internal/usecase/organization"
	"smartlenderup-backend/internal/usecase/portfolio"
	ucRepayment "smartlenderup-backend/internal/usecase/repayment"
	ucScoring "smartlenderup-backend/internal/usecase/scoring"
)

const snapshotTTL = 24 * time.Hour

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.WithError(err).Fatal("open mysql")
	}
	if cfg.AutoMigrate {
		if err := mysql.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("mysql handle")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("open redis")
	}

	// repositories
	approvals := mysql.NewApprovalRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	clients := rediscache.NewClientRepository(mysql.NewClientRepository(gdb), rdb, cfg.CacheTTL(), log)
	tx := mysql.NewGormUoW(gdb)
	locker := lock.NewRedisLocker(rdb, log)

	// usecases
	engine := approval.NewEngine(cfg.DefaultCountry, nil)
	approvalUC := ucApproval.NewUsecase(approvals, tx, engine, locker, log)
	loanUC := ucLoan.NewUsecase(loans, repayments, tx, nil)
	repaymentUC := ucRepayment.NewUsecase(tx, nil)
	clientUC := ucClient.NewUsecase(clients)
	scoringUC := ucScoring.NewUsecase(mysql.NewScoringRepository(gdb), clients, locker, log, nil)
	fundingUC := ucFunding.NewUsecase(mysql.NewFundingRepository(gdb), cfg.DefaultCountry)
	orgUC := ucOrg.NewUsecase(mysql.NewOrganizationRepository(gdb), nil)
	portfolioUC := portfolio.NewUsecase(loans, rediscache.NewLoanSnapshot(rdb, snapshotTTL), log, nil)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Clients:       httpadp.NewClientHandler(clientUC, scoringUC, log),
		Loans:         httpadp.NewLoanHandler(loanUC, log),
		Approvals:     httpadp.NewApprovalHandler(approvalUC, log),
		Scoring:       httpadp.NewScoringHandler(scoringUC, log),
		Portfolio:     httpadp.NewPortfolioHandler(portfolioUC, log),
		Organizations: httpadp.NewOrganizationHandler(orgUC, log),
		Funding:       httpadp.NewFundingHandler(fundingUC, log),
		Repayments:    httpadp.NewRepaymentHandler(repaymentUC, log),
	}, idemp.Idempotency(rdb, cfg.IdempotencyTTL(), log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	_ = rdb.Close()
	_ = sqlDB.Close()
}
