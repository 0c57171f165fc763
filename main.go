package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"smartlight/auth"
	"smartlight/internal/bridge"
	"smartlight/internal/config"
	"smartlight/internal/db"
	"smartlight/internal/logger"
	"smartlight/internal/mailer"
	"smartlight/internal/redis"
	"smartlight/internal/scheduler"
	"smartlight/internal/taskqueue"
	"smartlight/internal/web"

	"github.com/pion/mdns/v2"
	"go.uber.org/zap"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Get(cfg.LogLevel)
	defer log.Sync()

	dbConn, err := db.NewDB(cfg.DBURL)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer dbConn.Close()

	redisClient := redis.NewRedisClient(cfg.RedisAddr)

	mail := mailer.New(mailer.Config{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	})

	taskqueue.SetGlobalInstances(dbConn, mail, log.Named("taskqueue"))
	go taskqueue.StartWorkers(cfg.RedisAddr)

	br := bridge.New(bridge.Config{
		Broker:       cfg.MQTTBroker,
		ClientID:     cfg.MQTTClientID,
		ControlTopic: cfg.MQTTControlTopic,
		StatusTopic:  cfg.MQTTStatusTopic,
		Wildcard:     cfg.MQTTWildcard,
	}, taskqueue.EnqueuePersistTelemetry, log.Named("bridge"))
	br.Connect()

	sched := scheduler.New(dbConn, br, nil, log.Named("scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}

	authModule := auth.NewAuthModule(dbConn.Pool(), redisClient, cfg.JWTSecret)

	webServer := web.NewWebServer(dbConn, br, authModule, sched, log.Named("web"))
	go func() {
		if err := webServer.Start(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil {
			log.Fatalw("web server stopped", "error", err)
		}
	}()

	go startMDNSServer(cfg.MDNSLocalName, log)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	sched.Stop()
	br.Close()
	taskqueue.StopWorkers()
	log.Info("shutdown complete")
}

func startMDNSServer(localName string, log *zap.SugaredLogger) {
	addr4, err := net.ResolveUDPAddr("udp4", mdns.DefaultAddressIPv4)
	if err != nil {
		log.Warnw("failed to resolve UDP4 address for mDNS", "error", err)
		return
	}

	addr6, err := net.ResolveUDPAddr("udp6", mdns.DefaultAddressIPv6)
	if err != nil {
		log.Warnw("failed to resolve UDP6 address for mDNS", "error", err)
		return
	}

	l4, err := net.ListenUDP("udp4", addr4)
	if err != nil {
		log.Warnw("failed to listen on UDP4 for mDNS", "error", err)
		return
	}

	l6, err := net.ListenUDP("udp6", addr6)
	if err != nil {
		log.Warnw("failed to listen on UDP6 for mDNS", "error", err)
		return
	}

	_, err = mdns.Server(ipv4.NewPacketConn(l4), ipv6.NewPacketConn(l6), &mdns.Config{
		LocalNames: []string{localName},
	})
	if err != nil {
		log.Warnw("failed to start mDNS server", "error", err)
	}
}
