package scheduler

import (
	"context"
	"fmt"
	"strings"

	"moana_backoffice/internal/leads/repository"
	"moana_backoffice/internal/notification"
	"moana_backoffice/platform/apperr"
	"moana_backoffice/platform/config"
	"moana_backoffice/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	repo    repository.Repository
	sender  notification.Sender
	baseURL string
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, sender notification.Sender, baseURL string, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		repo:    repository.New(pool),
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}

	mux.HandleFunc(TaskBrokerLeadNotify, w.handleBrokerLeadNotify)

	return w, nil
}

func (w *Worker) handleBrokerLeadNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBrokerLeadNotifyPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	lead, err := w.repo.GetByID(ctx, leadID)
	if err != nil {
		// A deleted lead is not worth retrying.
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Warn("lead gone before notification", "leadId", leadID)
			return nil
		}
		return err
	}

	data := notification.NewLeadEmailData{
		ContactName:  lead.ContactDisplayName,
		Source:       lead.Source,
		BoatSummary:  boatSummary(lead),
		DashboardURL: fmt.Sprintf("%s/leads/%s", w.baseURL, lead.ID),
	}
	if lead.BrokerName != nil {
		data.BrokerName = *lead.BrokerName
	}
	if lead.CustomerComments != nil {
		data.Comments = *lead.CustomerComments
	}

	if err := w.sender.SendNewLeadEmail(ctx, payload.BrokerEmail, data); err != nil {
		w.log.Error("new lead notification failed", "error", err, "leadId", leadID, "broker", payload.BrokerEmail)
		return err
	}

	w.log.Info("new lead notification sent", "leadId", leadID, "broker", payload.BrokerEmail)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func boatSummary(lead repository.Lead) string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{lead.BoatYear, lead.BoatMake, lead.BoatModel} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}
