package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskBrokerLeadNotify = "leads.broker.notify"

// BrokerLeadNotifyPayload identifies the lead and the broker to notify.
// Only identifiers travel through the queue; the worker re-reads the lead
// so stale task data never reaches a broker's inbox.
type BrokerLeadNotifyPayload struct {
	LeadID      string `json:"leadId"`
	BrokerEmail string `json:"brokerEmail"`
}

func NewBrokerLeadNotifyTask(payload BrokerLeadNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBrokerLeadNotify, data), nil
}

func ParseBrokerLeadNotifyPayload(task *asynq.Task) (BrokerLeadNotifyPayload, error) {
	var payload BrokerLeadNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BrokerLeadNotifyPayload{}, err
	}
	return payload, nil
}
