package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matst80/slask-property/pkg/common"
	"github.com/matst80/slask-property/pkg/listing"
	"github.com/matst80/slask-property/pkg/server"
	"github.com/matst80/slask-property/pkg/session"
	"github.com/matst80/slask-property/pkg/storage"
	"github.com/matst80/slask-property/pkg/tracking"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")
var envFile = flag.String("env", ".env", "optional env file")

var listenAddress = ":8080"
var dataDir = "data"
var dataFile string
var redisUrl string
var redisPassword string
var rabbitUrl string
var sessionTtl = 24 * time.Hour

func loadConfig() {
	flag.Parse()
	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("no env file loaded: %v", err)
	}
	if addr, ok := os.LookupEnv("LISTEN_ADDRESS"); ok {
		listenAddress = addr
	}
	if dir, ok := os.LookupEnv("DATA_DIR"); ok {
		dataDir = dir
	}
	dataFile = os.Getenv("DATA_FILE")
	redisUrl = os.Getenv("REDIS_URL")
	redisPassword = os.Getenv("REDIS_PASSWORD")
	rabbitUrl = os.Getenv("RABBIT_HOST")
	sessionTtl = common.EnvSeconds("SESSION_TTL", sessionTtl)
}

func redisDb() int {
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		return 0
	}
	return db
}

func main() {
	loadConfig()

	store := listing.NewStore()
	if dataFile != "" {
		properties, err := storage.ReadCsvFile(dataFile)
		if err != nil {
			log.Fatalf("could not read %s: %v", dataFile, err)
		}
		if err = store.HandleProperties(properties); err != nil {
			log.Fatalf("could not load properties: %v", err)
		}
		_ = server.PropertyCounter{}.HandleProperties(properties)
		log.Printf("loaded %d properties from %s", store.Len(), dataFile)
	} else {
		disk := storage.NewDiskStorage(dataDir)
		if err := disk.LoadProperties(store, server.PropertyCounter{}); err != nil {
			log.Fatalf("could not load properties: %v", err)
		}
	}

	var states session.StateStore
	if redisUrl != "" {
		rs := session.NewRedisStore(redisUrl, redisPassword, redisDb(), sessionTtl)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			log.Printf("redis not reachable, keeping sessions in memory: %v", err)
			_ = rs.Close()
		} else {
			log.Printf("sessions stored in redis, url: %s", redisUrl)
			states = rs
		}
		cancel()
	}

	sessions := session.NewManager(store, states, server.NoResultsListener)
	sessions.StartEviction(time.Minute, sessionTtl)
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "slaskproperty_sessions_active",
		Help: "The number of sessions held in memory",
	}, func() float64 {
		return float64(sessions.Len())
	})

	srv := server.WebServer{
		Store:    store,
		Sessions: sessions,
	}

	if rabbitUrl != "" {
		trk, err := tracking.NewRabbitTracking(rabbitUrl)
		if err != nil {
			log.Printf("tracking disabled, could not connect to rabbit: %v", err)
		} else {
			srv.Tracking = trk
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))

	if *enableProfiling {
		log.Println("profiling enabled")
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	cfg := common.LoadTimeoutConfig(common.DefaultTimeoutConfig())
	httpServer := common.NewServerWithTimeouts(listenAddress, mux, cfg)
	common.RunServerWithShutdown(httpServer, "property api", cfg,
		func(ctx context.Context) error {
			if srv.Tracking == nil {
				return nil
			}
			return srv.Tracking.Close()
		},
		func(ctx context.Context) error {
			return sessions.Close()
		},
	)
}
