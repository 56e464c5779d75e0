package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"
	"sparkshift/internal/util"

	"go.uber.org/zap"
)

type SleepFunc func(ctx context.Context, d time.Duration) error

type ChargeControllerConfig struct {
	PollInterval time.Duration
	DryRun       bool
	Observers    []port.CycleObserver
	// Defaults to a context-aware timer
	Sleep SleepFunc
	Now   func() time.Time
}

// ChargeController owns the control loop state: the latest snapshot,
// the excess averager and the desired charge flag.
type ChargeController struct {
	telemetry port.TelemetrySource
	commands  port.CommandSink
	logic     port.ChargeDecisionLogic
	config    ChargeControllerConfig
	logger    *zap.Logger

	status   domain.SystemStatus
	averager ExcessAverager
	desired  domain.ChargeStart
}

func NewChargeController(telemetry port.TelemetrySource, commands port.CommandSink, logic port.ChargeDecisionLogic,
	config ChargeControllerConfig, logger *zap.Logger) *ChargeController {
	if config.Sleep == nil {
		config.Sleep = sleepContext
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &ChargeController{
		telemetry: telemetry,
		commands:  commands,
		logic:     logic,
		config:    config,
		logger:    util.ComponentLogger("charge_control", logger),
	}
}

// Start reads the initial snapshot and adopts the station's start flag as the desired one.
func (c *ChargeController) Start(ctx context.Context) error {
	if err := c.telemetry.UpdateStatus(ctx, &c.status); err != nil {
		return fmt.Errorf("initial status read failed: %w", err)
	}
	c.desired = c.status.ChargeStart
	c.logger.Info("charge_control: started",
		zap.Stringer("mode", c.status.ChargingMode),
		zap.Stringer("charger_status", c.status.ChargerStatus),
		zap.Stringer("charge", c.desired))
	if c.config.DryRun {
		c.logger.Info("charge_control: dry run enabled, commands will not be sent to the charging station")
	}
	return nil
}

// Cycle runs one control iteration. A telemetry error abandons the cycle
// without touching the averager.
func (c *ChargeController) Cycle(ctx context.Context) (*domain.CycleReport, error) {
	if err := c.telemetry.UpdateStatus(ctx, &c.status); err != nil {
		return nil, fmt.Errorf("status update failed: %w", err)
	}

	mean := c.averager.Observe(c.status.PowerExcess)
	report := domain.CycleReport{
		Time:         c.config.Now(),
		Status:       c.status,
		Rounds:       c.averager.Rounds(),
		Mean:         mean,
		DesiredStart: c.desired,
		DryRun:       c.config.DryRun,
	}
	c.logger.Info(report.StatusLine())

	if c.logic.IsDecisionEpoch(c.averager.Rounds()) {
		c.averager.Reset()
		decision := c.logic.Decide(mean)
		c.desired = decision.ChargeStart
		report.Decision = &decision
		if c.config.DryRun {
			c.logger.Info("charge_control: dry run, decision not applied",
				zap.String("reason", decision.Reason()),
				zap.Stringer("charge", decision.ChargeStart))
		}
	}

	c.notify(ctx, report)

	if c.config.DryRun {
		return &report, nil
	}
	if err := c.correct(ctx); err != nil {
		c.logger.Error("charge_control: command failed", zap.Error(err))
	}
	return &report, nil
}

// correct applies both corrections. A failure of one never blocks the other.
func (c *ChargeController) correct(ctx context.Context) error {
	var errs []error
	if start, ok := c.logic.ChargeStartCorrection(&c.status, c.desired); ok {
		c.logger.Info("charge_control: setting charge flag", zap.Stringer("charge", start))
		if err := c.commands.SetChargeStart(ctx, start); err != nil {
			errs = append(errs, err)
		}
	}
	if mode, ok := c.logic.ModeCorrection(&c.status); ok {
		c.logger.Info("charge_control: vehicle disconnected, switching mode",
			zap.Stringer("from", c.status.ChargingMode), zap.Stringer("to", mode))
		if err := c.commands.SetChargeMode(ctx, mode); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *ChargeController) notify(ctx context.Context, report domain.CycleReport) {
	for _, o := range c.config.Observers {
		if err := o.ObserveCycle(ctx, report); err != nil {
			c.logger.Warn("charge_control: cycle observer failed", zap.Error(err))
		}
	}
}

// Run loops until ctx is cancelled.
func (c *ChargeController) Run(ctx context.Context) error {
	for {
		if _, err := c.Cycle(ctx); err != nil {
			c.logger.Error("charge_control: cycle skipped", zap.Error(err))
		}
		if err := c.config.Sleep(ctx, c.config.PollInterval); err != nil {
			c.logger.Info("charge_control: stopped")
			return nil
		}
	}
}

func (c *ChargeController) Desired() domain.ChargeStart {
	return c.desired
}

func (c *ChargeController) Status() domain.SystemStatus {
	return c.status
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
