package packets

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateNodeRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssignSchedulesRequest replaces the node's entire precedence list; index 0
// is the highest precedence.
type AssignSchedulesRequest struct {
	ScheduleIDs []int `json:"schedule_ids" binding:"required"`
}

type CreateScheduleRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ScheduleType string  `json:"schedule_type" binding:"required,oneof=weekly one_off"`
	Priority     int     `json:"priority"`
	IsActive     *bool   `json:"is_active"`
	DjID         *int    `json:"dj_id"`
}

type UpdateScheduleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	IsActive    *bool   `json:"is_active"`
	DjID        *int    `json:"dj_id"`
}

// ScheduleBlockRequest carries a block for create and update alike. Exactly
// one of DayOfWeek or SpecificDate must be set, matching the schedule type.
type ScheduleBlockRequest struct {
	ContentID       *int    `json:"content_id"`
	DjID            *int    `json:"dj_id"`
	ScriptID        *int    `json:"script_id"`
	DayOfWeek       *int    `json:"day_of_week"`
	SpecificDate    *string `json:"specific_date"`
	StartTime       string  `json:"start_time" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
}

type CreateContentRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description"`
	ContentType     string  `json:"content_type" binding:"required"`
	ContentPath     string  `json:"content_path"`
	DurationMinutes *int    `json:"duration_minutes"`
	Tags            *string `json:"tags"`
}

type UpdateContentRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	ContentType     *string `json:"content_type"`
	ContentPath     *string `json:"content_path"`
	DurationMinutes *int    `json:"duration_minutes"`
	Tags            *string `json:"tags"`
}

type CreateDjProfileRequest struct {
	Name              string  `json:"name" binding:"required"`
	PersonalityPrompt string  `json:"personality_prompt"`
	VoiceConfigJSON   string  `json:"voice_config_json"`
	Talkativeness     float64 `json:"talkativeness"`
}

type UpdateDjProfileRequest struct {
	Name              *string  `json:"name"`
	PersonalityPrompt *string  `json:"personality_prompt"`
	VoiceConfigJSON   *string  `json:"voice_config_json"`
	Talkativeness     *float64 `json:"talkativeness"`
}

type CreateScriptRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	ScriptType    string  `json:"script_type" binding:"required"`
	ScriptContent string  `json:"script_content" binding:"required"`
}

type UpdateScriptRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ScriptType    *string `json:"script_type"`
	ScriptContent *string `json:"script_content"`
}

type UpsertSettingRequest struct {
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description"`
}
