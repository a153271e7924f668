package packets

import "github.com/Aircast-Systems/aircast/internal/model"

type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreatedNodeResponse is the only place the secret key is ever returned;
// it is shown once at registration so it can be copied to the device.
type CreatedNodeResponse struct {
	Node      model.Node `json:"node"`
	SecretKey string     `json:"secret_key"`
}

type AssignmentResponse struct {
	NodeID      int   `json:"node_id"`
	ScheduleIDs []int `json:"schedule_ids"`
}

type TimelineResponse struct {
	NodeID   int                   `json:"node_id"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
	Entries  []model.TimelineEntry `json:"entries"`
}
