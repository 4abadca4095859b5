package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/config"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/handler"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/middleware"
	pgRepo "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/repository/postgres"
	redisRepo "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/repository/redis"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	poolRepo := pgRepo.NewPoolRepo(db)
	entryRepo := pgRepo.NewEntryRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	houseguestRepo := pgRepo.NewHouseguestRepo(db)
	eventRepo := pgRepo.NewEventRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Создаем контекст с отменой для корректного завершения работы горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем сервисы
	cacheTTL := time.Duration(cfg.Standings.CacheTTLSec) * time.Second
	standingsService := service.NewStandingsService(entryRepo, questionRepo, eventRepo, poolRepo, cacheRepo, cacheTTL)
	poolService := service.NewPoolService(poolRepo, entryRepo, houseguestRepo, standingsService, db)
	entryService := service.NewEntryService(entryRepo, poolRepo, houseguestRepo, questionRepo, standingsService)
	questionService := service.NewQuestionService(questionRepo, poolRepo, standingsService)
	eventService := service.NewEventService(eventRepo, poolRepo, houseguestRepo, standingsService)

	// Инициализируем обработчики
	poolHandler := handler.NewPoolHandler(poolService, standingsService)
	entryHandler := handler.NewEntryHandler(entryService)
	questionHandler := handler.NewQuestionHandler(questionService)
	eventHandler := handler.NewEventHandler(eventService)
	standingsHandler := handler.NewStandingsHandler(standingsService)

	// Инициализируем middleware
	adminMiddleware := middleware.NewAdminKeyMiddleware(cfg.Admin.APIKey)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Фоновая синхронизация денормализованной колонки total_points.
	// Таблица результатов всегда пересчитывается на чтении; тикер лишь
	// подтягивает сохраненные значения к пересчитанным.
	refreshInterval := time.Duration(cfg.Standings.RefreshIntervalMin) * time.Minute
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		log.Printf("Запуск фоновой синхронизации total_points (каждые %v)", refreshInterval)

		for {
			select {
			case <-ticker.C:
				standingsService.RefreshPersistedTotals()
			case <-ctx.Done():
				log.Println("Завершение работы горутины синхронизации total_points")
				return
			}
		}
	}()

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Справочник правил начисления очков (публичный)
		api.GET("/scoring-rules", eventHandler.ListScoringRules)

		// Пулы
		pools := api.Group("/pools")
		{
			pools.GET("", poolHandler.ListPools)
			pools.GET("/code/:code", poolHandler.GetPoolByInviteCode)

			// Группа маршрутов, требующих poolID
			poolWithID := pools.Group("/:id")
			poolWithID.Use(middleware.ExtractUintParam("id", "poolID")) // Применяем middleware
			{
				poolWithID.GET("", poolHandler.GetPool)
				poolWithID.GET("/houseguests", poolHandler.ListHouseguests)
				poolWithID.GET("/questions", questionHandler.ListQuestions)
				poolWithID.GET("/entries", entryHandler.ListEntries)
				poolWithID.GET("/events", eventHandler.ListEvents)
				poolWithID.GET("/prizes", poolHandler.GetPrizeBreakdown)
				poolWithID.GET("/standings", standingsHandler.GetStandings)
				poolWithID.GET("/standings/export", standingsHandler.ExportStandings)
				poolWithID.GET("/questions/answers", standingsHandler.GetAnswerMatrix)

				// Подача заявки — публичная, но под rate limit
				poolWithID.POST("/entries",
					rateLimiter.Limit(middleware.SubmitRateLimitConfig()),
					entryHandler.SubmitEntry,
				)
			}
		}

		// Административные маршруты: статический ключ API + rate limit
		admin := api.Group("/admin")
		admin.Use(rateLimiter.LimitByIP(middleware.AdminRateLimitConfig()))
		admin.Use(adminMiddleware.RequireAdminKey())
		{
			adminPools := admin.Group("/pools")
			{
				adminPools.POST("", poolHandler.CreatePool)

				adminPoolWithID := adminPools.Group("/:id")
				adminPoolWithID.Use(middleware.ExtractUintParam("id", "poolID"))
				{
					adminPoolWithID.PUT("/status", poolHandler.UpdatePoolStatus)
					adminPoolWithID.POST("/complete", poolHandler.CompleteSeason)
					adminPoolWithID.POST("/houseguests", poolHandler.AddHouseguests)
					adminPoolWithID.PUT("/prize-config", poolHandler.SavePrizeConfiguration)
					adminPoolWithID.POST("/questions", questionHandler.AddQuestions)
					adminPoolWithID.GET("/questions", questionHandler.ListQuestionsAdmin)
					adminPoolWithID.GET("/entries", entryHandler.ListEntriesAdmin)
					adminPoolWithID.POST("/events", eventHandler.RecordEvent)
				}
			}

			adminEntries := admin.Group("/entries/:id")
			adminEntries.Use(middleware.ExtractUintParam("id", "entryID"))
			{
				adminEntries.GET("", entryHandler.GetEntry)
				adminEntries.PUT("/payment", entryHandler.ConfirmPayment)
				adminEntries.DELETE("", entryHandler.DeleteEntry)
			}

			adminQuestions := admin.Group("/questions/:id")
			adminQuestions.Use(middleware.ExtractUintParam("id", "questionID"))
			{
				adminQuestions.PUT("/reveal", questionHandler.RevealAnswer)
				adminQuestions.PUT("", questionHandler.UpdateQuestion)
				adminQuestions.DELETE("", questionHandler.DeleteQuestion)
			}

			adminEvents := admin.Group("/events/:id")
			adminEvents.Use(middleware.ExtractUintParam("id", "eventID"))
			{
				adminEvents.DELETE("", eventHandler.DeleteEvent)
			}

			adminHouseguests := admin.Group("/houseguests/:id")
			adminHouseguests.Use(middleware.ExtractUintParam("id", "houseguestID"))
			{
				adminHouseguests.PUT("/status", eventHandler.UpdateHouseguestStatus)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Отправляем сигнал завершения для всех горутин
	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
