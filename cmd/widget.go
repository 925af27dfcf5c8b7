package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	calendarv1 "github.com/Leganyst/calendar-scheduler/internal/api/calendar/v1"
	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/calendar"
	"github.com/Leganyst/calendar-scheduler/internal/config"
	"github.com/Leganyst/calendar-scheduler/internal/flow"
	"github.com/Leganyst/calendar-scheduler/internal/logging"
	"github.com/Leganyst/calendar-scheduler/internal/submit"
	"github.com/Leganyst/calendar-scheduler/internal/tui"
)

var widgetFlags struct {
	calendarConfig string
	transport      string
	submitURL      string
	grpcTarget     string
	logFile        string
}

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Run the terminal booking calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWidget(cmd)
	},
}

func init() {
	f := widgetCmd.Flags()
	f.StringVar(&widgetFlags.calendarConfig, "config", "", "calendar YAML: weekStartDay and availability (overrides CALENDAR_CONFIG)")
	f.StringVar(&widgetFlags.transport, "transport", "", "submission transport: http or grpc (overrides SUBMIT_TRANSPORT)")
	f.StringVar(&widgetFlags.submitURL, "submit-url", "", "HTTP endpoint for submissions (overrides SUBMIT_URL)")
	f.StringVar(&widgetFlags.grpcTarget, "grpc-target", "", "gRPC target for submissions (overrides SUBMIT_GRPC_TARGET)")
	f.StringVar(&widgetFlags.logFile, "log-file", "", "developer log file (overrides WIDGET_LOG_FILE)")
}

// applyWidgetFlags накладывает непустые флаги поверх конфигурации из окружения.
func applyWidgetFlags(w *config.WidgetConfig) {
	if widgetFlags.calendarConfig != "" {
		w.CalendarConfigPath = widgetFlags.calendarConfig
	}
	if widgetFlags.transport != "" {
		w.SubmitTransport = config.NormalizeTransport(widgetFlags.transport)
	}
	if widgetFlags.submitURL != "" {
		w.SubmitURL = widgetFlags.submitURL
	}
	if widgetFlags.grpcTarget != "" {
		w.SubmitGRPCTarget = widgetFlags.grpcTarget
	}
	if widgetFlags.logFile != "" {
		w.LogFile = widgetFlags.logFile
	}
}

func runWidget(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	w := cfg.Widget
	applyWidgetFlags(&w)

	logger, err := logging.NewFile(w.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	calCfg, err := calendar.LoadConfig(w.CalendarConfigPath)
	if err != nil {
		return fmt.Errorf("load calendar config: %w", err)
	}

	var submitter submit.Submitter
	switch w.SubmitTransport {
	case config.TransportGRPC:
		conn, err := submit.DialGRPC(w.SubmitGRPCTarget)
		if err != nil {
			return err
		}
		defer conn.Close()
		submitter = submit.NewGRPCSubmitter(calendarv1.NewBookingServiceClient(conn))
	case config.TransportHTTP:
		submitter = submit.NewHTTPSubmitter(w.SubmitURL, nil)
	default:
		return fmt.Errorf("unknown submit transport %q", w.SubmitTransport)
	}

	today := time.Now()
	machine := flow.NewMachine(calCfg, today, today, booking.NewValidator(logger))

	logger.Info("widget started",
		zap.String("transport", w.SubmitTransport),
		zap.String("calendar_config", w.CalendarConfigPath),
	)

	model := tui.New(cmd.Context(), machine, submitter, logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	// соединение закрывается отложенно, поэтому заявка должна уйти до return
	model.Flush()
	if err != nil {
		return fmt.Errorf("run widget: %w", err)
	}
	return nil
}
