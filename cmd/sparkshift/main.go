package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sparkshift/internal/adapter/device"
	admqtt "sparkshift/internal/adapter/mqtt"
	"sparkshift/internal/config"
	"sparkshift/internal/core/port"
	"sparkshift/internal/core/service"
	"sparkshift/internal/mqtt"
	"sparkshift/internal/server"
	"sparkshift/internal/util"
	"sparkshift/pkg/victron_modbus"

	"github.com/carlmjohnson/versioninfo"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {

	startup := util.NewSlogLogger(os.Stderr, zap.InfoLevel)

	// load and print config
	cfg, err := config.Load(viper.New())
	if err != nil {
		startup.Error("config errors", "error", err)
		return 1
	}
	startup.Info("Using", "config", cfg.Redacted(), "version", versioninfo.Short())

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(zapCfg.Build())
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	devices, err := connectDevices(cfg, logger)
	if err != nil {
		logger.Error("could not connect to devices", zap.Error(err))
		return 1
	}
	defer devices.Close()

	board := service.NewStatusBoard(time.Now(), cfg.HealthMaxAge())
	observers := []port.CycleObserver{board}

	if cfg.MQTTEnabled() {
		publisher, disconnect, err := connectMQTT(cfg, logger)
		if err != nil {
			logger.Error("could not connect to MQTT broker", zap.Error(err))
			return 1
		}
		defer disconnect()
		observers = append(observers, publisher)
	}

	controller := service.NewChargeController(devices, devices, &service.DefaultChargeDecisionLogic{
		PowerExcessMin:  cfg.PowerExcessMin,
		AveragingWindow: cfg.AveragingWindow(),
		PollInterval:    cfg.PollInterval(),
		Logger:          logger,
	}, service.ChargeControllerConfig{
		PollInterval: cfg.PollInterval(),
		DryRun:       cfg.DryRun,
		Observers:    observers,
	}, logger)

	if err := controller.Start(ctx); err != nil {
		logger.Error("could not read initial status", zap.Error(err))
		return 1
	}

	if cfg.Port > 0 {
		apiServer := server.NewServer(*cfg, board)
		go func() {
			if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", zap.Error(err))
				stop()
			}
		}()
		defer gracefulShutdown(apiServer, logger)
	}

	if err := controller.Run(ctx); err != nil {
		logger.Error("control loop failed", zap.Error(err))
		return 1
	}
	logger.Info("shutting down gracefully")
	return 0
}

func gracefulShutdown(apiServer *http.Server, logger *zap.Logger) {
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

func connectDevices(cfg *config.Config, logger *zap.Logger) (*device.ModbusDevices, error) {

	gx, err := victron_modbus.CreateGXSystemModbusReader(cfg.GX.Host, cfg.GX.Port, cfg.GX.UnitId,
		cfg.ModbusTimeout(), logger, nil)
	if err != nil {
		return nil, err
	}

	evcs, err := victron_modbus.CreateEVCSModbusClient(cfg.EVCS.Host, cfg.EVCS.Port, cfg.EVCS.UnitId,
		cfg.ModbusTimeout(), logger, nil)
	if err != nil {
		return nil, err
	}

	devices := device.NewModbusDevices(gx, evcs, logger)
	if err := devices.Open(); err != nil {
		return nil, err
	}
	return devices, nil
}

func connectMQTT(cfg *config.Config, logger *zap.Logger) (*admqtt.StatePublisher, func(), error) {

	var publisher *admqtt.StatePublisher
	client := mqtt.CreateMQTTClient(cfg, mqtt.OptsFromConfig(cfg), func(_ pahomqtt.Client) {
		// runs on every (re)connection
		if err := publisher.Online(); err != nil {
			logger.Warn("mqtt: could not announce bridge", zap.Error(err))
		}
	}, func(_ pahomqtt.Client, err error) {
		logger.Warn("mqtt: connection lost", zap.Error(err))
	})
	publisher = admqtt.NewStatePublisher(client, cfg.MQTT.BaseTopic, cfg.MQTT.HADiscoveryEnable, logger)

	if err := client.Connect(10 * time.Second); err != nil {
		return nil, nil, err
	}

	return publisher, func() {
		if err := publisher.Offline(); err != nil {
			logger.Warn("mqtt: could not publish offline state", zap.Error(err))
		}
		client.Disconnect(time.Second)
	}, nil
}
