package scheduler

import (
	"context"

	"moana_backoffice/internal/events"
	"moana_backoffice/platform/logger"
)

// RegisterLeadNotifyDispatcher subscribes the task client to lead ingestion
// events: every stored lead with a resolved broker becomes a queued
// notification task. Leads without a broker are skipped; they surface in the
// dashboard's unassigned view instead.
func RegisterLeadNotifyDispatcher(bus events.Bus, client *Client, log *logger.Logger) {
	if client == nil {
		return
	}

	bus.Subscribe(events.LeadIngested{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadIngested)
		if !ok {
			return nil
		}
		if e.BrokerID == nil || e.BrokerEmail == "" {
			return nil
		}

		err := client.EnqueueBrokerLeadNotify(ctx, BrokerLeadNotifyPayload{
			LeadID:      e.LeadID.String(),
			BrokerEmail: e.BrokerEmail,
		})
		if err != nil {
			log.Error("broker notify enqueue failed", "error", err, "leadId", e.LeadID)
			return err
		}

		log.Info("broker notify queued", "leadId", e.LeadID, "broker", e.BrokerEmail)
		return nil
	}))
}
