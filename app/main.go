package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/pulseapp/pulse/internal/idgen"
	"github.com/pulseapp/pulse/internal/realtime"
	"github.com/pulseapp/pulse/internal/repository"
	mysqlRepo "github.com/pulseapp/pulse/internal/repository/mysql"
	redisCache "github.com/pulseapp/pulse/internal/repository/redis"
	"github.com/pulseapp/pulse/internal/rest"
	"github.com/pulseapp/pulse/internal/rest/middleware"
	blockUC "github.com/pulseapp/pulse/internal/usecase/block"
	commentUC "github.com/pulseapp/pulse/internal/usecase/comment"
	followUC "github.com/pulseapp/pulse/internal/usecase/follow"
	notificationUC "github.com/pulseapp/pulse/internal/usecase/notification"
	postUC "github.com/pulseapp/pulse/internal/usecase/post"
	userUC "github.com/pulseapp/pulse/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	defaultNodeID      = 1
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2

	rateLimitPerSec = 20
	rateLimitBurst  = 40
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare id generator
	nodeIDStr := os.Getenv("NODE_ID")
	nodeID, err := strconv.ParseInt(nodeIDStr, 10, 64)
	if err != nil {
		log.Println("failed to parse node id, using default node id")
		nodeID = defaultNodeID
	}
	ids, err := idgen.New(nodeID)
	if err != nil {
		log.Fatal("invalid node id:", err)
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	route.Use(middleware.RateLimit(rate.Limit(rateLimitPerSec), rateLimitBurst))
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	requestTimeout := middleware.SetRequestContextWithTimeout(timeoutContext)

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	postRepo := mysqlRepo.NewPostRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	blockRepo := mysqlRepo.NewBlockRepository(db)
	followRepo := mysqlRepo.NewFollowRepository(db)
	notifRepo := mysqlRepo.NewNotificationRepository(db)
	settingsRepo := mysqlRepo.NewSettingsRepository(db)

	// Cache层
	blockCache := redisCache.NewBlockCache(client)
	profileCache := redisCache.NewProfileCache(client)

	// Repository协调层
	blockGraph := repository.NewBlockGraph(blockRepo, blockCache)
	profiles := repository.NewProfileProvider(userRepo, profileCache)
	settings := repository.NewSettingsProvider(settingsRepo, profileCache)

	// Start realtime fanout
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(registry, blockGraph)
	go broadcaster.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}

	userSvc := userUC.NewService(userRepo, profiles, settings, ids, jwtSecret, time.Duration(jwtTTL)*time.Hour)
	postSvc := postUC.NewService(postRepo, followRepo, notifRepo, blockGraph, profiles, settings, broadcaster, ids)
	commentSvc := commentUC.NewService(commentRepo, postRepo, notifRepo, blockGraph, profiles, broadcaster, ids)
	followSvc := followUC.NewService(followRepo, notifRepo, blockGraph, profiles, broadcaster, ids)
	blockSvc := blockUC.NewService(blockGraph, blockRepo, followRepo, profiles)
	notifSvc := notificationUC.NewService(notifRepo, profiles)

	userHandler := rest.NewUserHandler(userSvc)
	postHandler := rest.NewPostHandler(postSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	followHandler := rest.NewFollowHandler(followSvc)
	blockHandler := rest.NewBlockHandler(blockSvc)
	notifHandler := rest.NewNotificationHandler(notifSvc)
	settingsHandler := rest.NewSettingsHandler(settings)
	wsHandler := rest.NewWSHandler(registry)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))

	// Register routes
	route.POST("/register", requestTimeout, userHandler.Register)
	route.POST("/login", requestTimeout, userHandler.Login)
	route.GET("/settings", requestTimeout, settingsHandler.Get)

	// websocket route skips the request timeout: the connection is long-lived
	route.GET("/ws", authMiddleware, wsHandler.Serve)

	authorized := route.Group("/")
	authorized.Use(authMiddleware, requestTimeout)
	{
		authorized.GET("/users/:id", userHandler.GetProfile)
		authorized.PUT("/profile", userHandler.UpdateProfile)
		authorized.PUT("/settings", settingsHandler.Update)

		authorized.GET("/feed", postHandler.Feed)
		authorized.GET("/feed/following", postHandler.FollowingFeed)

		authorized.POST("/posts", postHandler.Create)
		authorized.GET("/posts/:id", postHandler.GetByID)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.DELETE("/posts/:id/like", postHandler.Unlike)
		authorized.GET("/posts/:id/likes", postHandler.Likers)
		authorized.POST("/posts/:id/bookmark", postHandler.Bookmark)
		authorized.DELETE("/posts/:id/bookmark", postHandler.Unbookmark)
		authorized.GET("/bookmarks", postHandler.Bookmarks)
		authorized.POST("/posts/:id/share", postHandler.Share)

		authorized.GET("/posts/:id/comments", commentHandler.FetchCommentsByPost)
		authorized.POST("/posts/:id/comments", commentHandler.CreateComment)
		authorized.DELETE("/comments/:id", commentHandler.DeleteComment)
		authorized.POST("/comments/:id/like", commentHandler.LikeComment)
		authorized.DELETE("/comments/:id/like", commentHandler.UnlikeComment)

		authorized.POST("/users/:id/follow", followHandler.Request)
		authorized.DELETE("/users/:id/follow", followHandler.Unfollow)
		authorized.GET("/users/:id/followers", followHandler.Followers)
		authorized.GET("/users/:id/following", followHandler.Following)
		authorized.GET("/follow-requests", followHandler.PendingRequests)
		authorized.POST("/follow-requests/:request_id/accept", followHandler.Accept)
		authorized.POST("/follow-requests/:request_id/reject", followHandler.Reject)
		authorized.POST("/follow-requests/:request_id/cancel", followHandler.Cancel)

		authorized.POST("/users/:id/block", blockHandler.Block)
		authorized.DELETE("/users/:id/block", blockHandler.Unblock)
		authorized.GET("/blocks", blockHandler.Blocked)

		authorized.GET("/notifications", notifHandler.Fetch)
		authorized.GET("/notifications/unread-count", notifHandler.UnreadCount)
		authorized.POST("/notifications/read-all", notifHandler.MarkAllRead)
		authorized.POST("/notifications/:id/read", notifHandler.MarkRead)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
