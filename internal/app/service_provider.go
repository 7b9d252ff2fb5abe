package app

import (
	"context"
	"log"
	authAPI "reward_wheel/internal/api/auth"
	checkoutAPI "reward_wheel/internal/api/checkout"
	reportAPI "reward_wheel/internal/api/report"
	spinAPI "reward_wheel/internal/api/spin"
	"reward_wheel/internal/config"
	"reward_wheel/internal/config/env"
	"reward_wheel/internal/middleware"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/repository/account_repo"
	"reward_wheel/internal/repository/memory"
	"reward_wheel/internal/repository/referral_repo"
	"reward_wheel/internal/repository/spin_log_repo"
	"reward_wheel/internal/repository/stats_repo"
	"reward_wheel/internal/service"
	"reward_wheel/internal/service/auth"
	"reward_wheel/internal/service/checkout"
	"reward_wheel/internal/service/ledger"
	"reward_wheel/internal/service/prize"
	"reward_wheel/internal/service/referral"
	"reward_wheel/internal/service/report"
	"reward_wheel/internal/service/spin"
	"reward_wheel/internal/service/streak"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

type ServiceProvider struct {
	clock clockwork.Clock

	//TXManager
	txManager trm.Manager

	// Storage
	storageCfg  config.StorageConfig
	pgConfig    config.PGConfig
	dbClient    *pgxpool.Pool
	memoryStore *memory.Store

	// Repositories
	accountRepo  repository.AccountRepository
	spinLogRepo  repository.SpinLogRepository
	referralRepo repository.ReferralRepository
	statsRepo    repository.StatsRepository

	// Economy
	economyCfg   config.EconomyConfig
	prizeTable   service.PrizeTable
	streakPolicy service.StreakPolicy

	// Services
	ledgerServ   service.LedgerService
	referralServ service.ReferralService
	spinServ     service.SpinService
	authServ     service.AuthService
	checkoutServ service.CheckoutService
	reportServ   service.ReportService

	// Handlers
	authHand     *authAPI.Handler
	spinHand     *spinAPI.Handler
	checkoutHand *checkoutAPI.Handler
	reportHand   *reportAPI.Handler

	// Router and configs
	jwtCfg     config.JWTConfig
	paymentCfg config.PaymentConfig
	reportCfg  config.ReportConfig
	httpCfg    config.HTTPConfig
	router     chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Clock() clockwork.Clock {
	if sp.clock == nil {
		sp.clock = clockwork.NewRealClock()
	}
	return sp.clock
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) inMemory() bool {
	return sp.StorageCfg().Driver() == env.StorageMemory
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) MemoryStore() *memory.Store {
	if sp.memoryStore == nil {
		log.Println("using in-memory storage, data is lost on restart")
		sp.memoryStore = memory.NewStore(sp.Clock())
	}
	return sp.memoryStore
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if sp.inMemory() {
			sp.txManager = memory.NewTxManager(sp.MemoryStore())
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) AccountRepo(ctx context.Context) repository.AccountRepository {
	if sp.accountRepo == nil {
		if sp.inMemory() {
			sp.accountRepo = memory.NewAccountRepository(sp.MemoryStore())
		} else {
			sp.accountRepo = account_repo.NewAccountRepository(sp.DBClient(ctx))
		}
	}
	return sp.accountRepo
}

func (sp *ServiceProvider) SpinLogRepo(ctx context.Context) repository.SpinLogRepository {
	if sp.spinLogRepo == nil {
		if sp.inMemory() {
			sp.spinLogRepo = memory.NewSpinLogRepository(sp.MemoryStore())
		} else {
			sp.spinLogRepo = spin_log_repo.NewSpinLogRepository(sp.DBClient(ctx))
		}
	}
	return sp.spinLogRepo
}

func (sp *ServiceProvider) ReferralRepo(ctx context.Context) repository.ReferralRepository {
	if sp.referralRepo == nil {
		if sp.inMemory() {
			sp.referralRepo = memory.NewReferralRepository(sp.MemoryStore())
		} else {
			sp.referralRepo = referral_repo.NewReferralRepository(sp.DBClient(ctx))
		}
	}
	return sp.referralRepo
}

func (sp *ServiceProvider) StatsRepo(ctx context.Context) repository.StatsRepository {
	if sp.statsRepo == nil {
		if sp.inMemory() {
			sp.statsRepo = memory.NewStatsRepository(sp.MemoryStore())
		} else {
			sp.statsRepo = stats_repo.NewStatsRepository(sp.DBClient(ctx), sp.AccountRepo(ctx))
		}
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) EconomyCfg() config.EconomyConfig {
	if sp.economyCfg == nil {
		cfg, err := env.NewEconomyConfigFromYAML(env.EconomyConfigPath())
		if err != nil {
			panic("failed to get economy config: " + err.Error())
		}
		sp.economyCfg = cfg
	}
	return sp.economyCfg
}

func (sp *ServiceProvider) PrizeTable() service.PrizeTable {
	if sp.prizeTable == nil {
		t, err := prize.NewTable(sp.EconomyCfg().Prizes(), nil)
		if err != nil {
			panic("failed to build prize table: " + err.Error())
		}
		sp.prizeTable = t
	}
	return sp.prizeTable
}

func (sp *ServiceProvider) StreakPolicy() service.StreakPolicy {
	if sp.streakPolicy == nil {
		sp.streakPolicy = streak.NewPolicy(sp.EconomyCfg().StreakRewards(), sp.EconomyCfg().StreakMaxBonus())
	}
	return sp.streakPolicy
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(
			sp.AccountRepo(ctx),
			sp.SpinLogRepo(ctx),
			sp.PrizeTable(),
			sp.StreakPolicy(),
			sp.EconomyCfg(),
			sp.TXManager(ctx),
			sp.Clock(),
		)
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) ReferralService(ctx context.Context) service.ReferralService {
	if sp.referralServ == nil {
		sp.referralServ = referral.NewReferralService(
			sp.AccountRepo(ctx),
			sp.ReferralRepo(ctx),
			sp.LedgerService(ctx),
			sp.EconomyCfg(),
			sp.TXManager(ctx),
		)
	}
	return sp.referralServ
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinServ == nil {
		sp.spinServ = spin.NewSpinService(
			sp.LedgerService(ctx),
			sp.ReferralService(ctx),
			sp.StreakPolicy(),
			sp.SpinLogRepo(ctx),
			sp.ReferralRepo(ctx),
			sp.HTTPCfg(),
		)
	}
	return sp.spinServ
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.TXManager(ctx),
			sp.AccountRepo(ctx),
			sp.ReferralService(ctx),
			sp.EconomyCfg(),
			sp.JWTCfg(),
			sp.Clock(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) CheckoutService(ctx context.Context) service.CheckoutService {
	if sp.checkoutServ == nil {
		sp.checkoutServ = checkout.NewCheckoutService(sp.LedgerService(ctx), sp.EconomyCfg(), sp.PaymentCfg())
	}
	return sp.checkoutServ
}

func (sp *ServiceProvider) ReportService(ctx context.Context) service.ReportService {
	if sp.reportServ == nil {
		sp.reportServ = report.NewReportService(sp.AccountRepo(ctx), sp.StatsRepo(ctx), sp.PrizeTable())
	}
	return sp.reportServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) SpinHandler(ctx context.Context) *spinAPI.Handler {
	if sp.spinHand == nil {
		sp.spinHand = spinAPI.NewHandler(spinAPI.HandlerDeps{Serv: sp.SpinService(ctx)})
	}
	return sp.spinHand
}

func (sp *ServiceProvider) CheckoutHandler(ctx context.Context) *checkoutAPI.Handler {
	if sp.checkoutHand == nil {
		sp.checkoutHand = checkoutAPI.NewHandler(checkoutAPI.HandlerDeps{
			Serv:       sp.CheckoutService(ctx),
			PaymentCfg: sp.PaymentCfg(),
		})
	}
	return sp.checkoutHand
}

func (sp *ServiceProvider) ReportHandler(ctx context.Context) *reportAPI.Handler {
	if sp.reportHand == nil {
		sp.reportHand = reportAPI.NewHandler(reportAPI.HandlerDeps{Serv: sp.ReportService(ctx)})
	}
	return sp.reportHand
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) PaymentCfg() config.PaymentConfig {
	if sp.paymentCfg == nil {
		cfg, err := env.NewPaymentConfig()
		if err != nil {
			panic("failed to get payment config: " + err.Error())
		}
		sp.paymentCfg = cfg
	}
	return sp.paymentCfg
}

func (sp *ServiceProvider) ReportCfg() config.ReportConfig {
	if sp.reportCfg == nil {
		cfg, err := env.NewReportConfig()
		if err != nil {
			panic("failed to get report config: " + err.Error())
		}
		sp.reportCfg = cfg
	}
	return sp.reportCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = NewRouter(
			sp.AuthHandler(ctx),
			sp.SpinHandler(ctx),
			sp.CheckoutHandler(ctx),
			sp.ReportHandler(ctx),
			sp.JWTCfg(),
		)
	}

	return sp.router
}

// NewRouter - все маршруты сервиса
func NewRouter(
	authHandler *authAPI.Handler,
	spinHandler *spinAPI.Handler,
	checkoutHandler *checkoutAPI.Handler,
	reportHandler *reportAPI.Handler,
	jwtCfg config.JWTConfig,
) chi.Router {
	r := chi.NewRouter()

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Webhook-Secret"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	// Auth endpoints
	r.Route("/auth", func(rr chi.Router) {
		rr.Post("/register", authHandler.Register)
		rr.Post("/login", authHandler.Login)
	})

	r.Route("/api", func(rr chi.Router) {
		// Public endpoints
		rr.Get("/leaderboard", reportHandler.Leaderboard)
		rr.Get("/prizes", reportHandler.Prizes)
		rr.Get("/packages", checkoutHandler.Packages)
		rr.Post("/checkout/confirm", checkoutHandler.Confirm)

		// Endpoints with account identity
		rr.Group(func(pr chi.Router) {
			pr.Use(middleware.Auth(jwtCfg))
			pr.Get("/account", spinHandler.Account)
			pr.Post("/spin", spinHandler.Spin)
			pr.Post("/rewarded-spin", spinHandler.RewardedSpin)
			pr.Post("/checkout", checkoutHandler.Checkout)
		})
	})

	r.Get("/admin/stats", reportHandler.Stats)

	return r
}
