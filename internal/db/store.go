package db

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Aircast-Systems/aircast/internal/model"
)

// ErrUnknownScheduleID is returned when an assignment references a schedule
// that does not exist.
var ErrUnknownScheduleID = errors.New("unknown schedule id")

// Store is the persistence facade handed to API controllers. It mirrors the
// package-level query functions so tests can substitute an in-memory
// implementation.
type Store interface {
	// users
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// nodes
	CreateNode(name, secretKey string, createdBy int) (model.Node, error)
	ListNodes() ([]model.Node, error)
	GetNodeByID(nodeID int) (model.Node, error)
	GetNodeBySecretKey(secretKey string) (model.Node, error)
	DeleteNode(nodeID int) error
	RecordNodeHeartbeat(nodeID int, ipAddress *string, currentContentID *int, positionSecs, durationSecs *float64) error

	// schedules
	CreateSchedule(name string, description *string, scheduleType string, priority int, isActive bool, djID *int, createdBy int) (model.Schedule, error)
	ListSchedules() ([]model.Schedule, error)
	GetSchedule(scheduleID int) (model.Schedule, error)
	UpdateSchedule(scheduleID int, name *string, description *string, priority *int, isActive *bool, djID *int) (model.Schedule, error)
	DeleteSchedule(scheduleID int) error

	// schedule blocks
	ListScheduleBlocks(scheduleID int) ([]model.ScheduleBlock, error)
	CreateScheduleBlock(scheduleID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error)
	UpdateScheduleBlock(scheduleID, blockID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error)
	DeleteScheduleBlock(scheduleID, blockID int) (bool, error)

	// node assignments
	SetNodeAssignment(nodeID int, orderedScheduleIDs []int) error
	GetNodeAssignment(nodeID int) ([]int, error)
	ListAssignedSchedules(nodeID int) ([]model.Schedule, error)
	NodesAssignedToSchedule(scheduleID int) ([]int, error)

	// content
	CreateContentItem(title string, description *string, contentType, contentPath string, durationMinutes *int, tags *string, createdBy int) (model.ContentItem, error)
	ListContentItems() ([]model.ContentItem, error)
	GetContentItemByID(contentID int) (model.ContentItem, error)
	UpdateContentItem(contentID int, title *string, description *string, contentType, contentPath *string, durationMinutes *int, tags *string) error
	DeleteContentItem(contentID int) error
	ContentExists(contentID int) (bool, error)

	// dj profiles
	CreateDjProfile(name, personalityPrompt, voiceConfigJSON string, talkativeness float64, createdBy int) (model.DjProfile, error)
	ListDjProfiles() ([]model.DjProfile, error)
	GetDjProfileByID(djID int) (model.DjProfile, error)
	UpdateDjProfile(djID int, name, personalityPrompt, voiceConfigJSON *string, talkativeness *float64) error
	DeleteDjProfile(djID int) error

	// scripts
	CreateScript(name string, description *string, scriptType, scriptContent string, createdBy int) (model.Script, error)
	ListScripts() ([]model.Script, error)
	GetScriptByID(scriptID int) (model.Script, error)
	UpdateScript(scriptID int, name, description, scriptType, scriptContent *string) error
	DeleteScript(scriptID int) error

	// settings
	ListSettings() ([]model.GlobalSetting, error)
	GetSettingValue(key string) (string, error)
	UpsertSetting(key, value string, description *string) (model.GlobalSetting, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	if conn == nil {
		conn = DB
	}
	return &pgStore{db: conn}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) CreateNode(name, secretKey string, createdBy int) (model.Node, error) {
	return CreateNode(name, secretKey, createdBy)
}
func (s *pgStore) ListNodes() ([]model.Node, error)            { return ListNodes() }
func (s *pgStore) GetNodeByID(nodeID int) (model.Node, error)  { return GetNodeByID(nodeID) }
func (s *pgStore) GetNodeBySecretKey(k string) (model.Node, error) {
	return GetNodeBySecretKey(k)
}
func (s *pgStore) DeleteNode(nodeID int) error { return DeleteNode(nodeID) }
func (s *pgStore) RecordNodeHeartbeat(nodeID int, ipAddress *string, currentContentID *int, positionSecs, durationSecs *float64) error {
	return RecordNodeHeartbeat(nodeID, ipAddress, currentContentID, positionSecs, durationSecs)
}

func (s *pgStore) CreateSchedule(name string, description *string, scheduleType string, priority int, isActive bool, djID *int, createdBy int) (model.Schedule, error) {
	return CreateSchedule(name, description, scheduleType, priority, isActive, djID, createdBy)
}
func (s *pgStore) ListSchedules() ([]model.Schedule, error)          { return ListSchedules() }
func (s *pgStore) GetSchedule(scheduleID int) (model.Schedule, error) { return GetSchedule(scheduleID) }
func (s *pgStore) UpdateSchedule(scheduleID int, name *string, description *string, priority *int, isActive *bool, djID *int) (model.Schedule, error) {
	return UpdateSchedule(scheduleID, name, description, priority, isActive, djID)
}
func (s *pgStore) DeleteSchedule(scheduleID int) error { return DeleteSchedule(scheduleID) }

func (s *pgStore) ListScheduleBlocks(scheduleID int) ([]model.ScheduleBlock, error) {
	return ListScheduleBlocks(scheduleID)
}
func (s *pgStore) CreateScheduleBlock(scheduleID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error) {
	return CreateScheduleBlock(scheduleID, candidate)
}
func (s *pgStore) UpdateScheduleBlock(scheduleID, blockID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error) {
	return UpdateScheduleBlock(scheduleID, blockID, candidate)
}
func (s *pgStore) DeleteScheduleBlock(scheduleID, blockID int) (bool, error) {
	return DeleteScheduleBlock(scheduleID, blockID)
}

func (s *pgStore) SetNodeAssignment(nodeID int, orderedScheduleIDs []int) error {
	return SetNodeAssignment(nodeID, orderedScheduleIDs)
}
func (s *pgStore) GetNodeAssignment(nodeID int) ([]int, error) { return GetNodeAssignment(nodeID) }
func (s *pgStore) ListAssignedSchedules(nodeID int) ([]model.Schedule, error) {
	return ListAssignedSchedules(nodeID)
}
func (s *pgStore) NodesAssignedToSchedule(scheduleID int) ([]int, error) {
	return NodesAssignedToSchedule(scheduleID)
}

func (s *pgStore) CreateContentItem(title string, description *string, contentType, contentPath string, durationMinutes *int, tags *string, createdBy int) (model.ContentItem, error) {
	return CreateContentItem(title, description, contentType, contentPath, durationMinutes, tags, createdBy)
}
func (s *pgStore) ListContentItems() ([]model.ContentItem, error) { return ListContentItems() }
func (s *pgStore) GetContentItemByID(contentID int) (model.ContentItem, error) {
	return GetContentItemByID(contentID)
}
func (s *pgStore) UpdateContentItem(contentID int, title *string, description *string, contentType, contentPath *string, durationMinutes *int, tags *string) error {
	return UpdateContentItem(contentID, title, description, contentType, contentPath, durationMinutes, tags)
}
func (s *pgStore) DeleteContentItem(contentID int) error { return DeleteContentItem(contentID) }
func (s *pgStore) ContentExists(contentID int) (bool, error) { return ContentExists(contentID) }

func (s *pgStore) CreateDjProfile(name, personalityPrompt, voiceConfigJSON string, talkativeness float64, createdBy int) (model.DjProfile, error) {
	return CreateDjProfile(name, personalityPrompt, voiceConfigJSON, talkativeness, createdBy)
}
func (s *pgStore) ListDjProfiles() ([]model.DjProfile, error)        { return ListDjProfiles() }
func (s *pgStore) GetDjProfileByID(djID int) (model.DjProfile, error) { return GetDjProfileByID(djID) }
func (s *pgStore) UpdateDjProfile(djID int, name, personalityPrompt, voiceConfigJSON *string, talkativeness *float64) error {
	return UpdateDjProfile(djID, name, personalityPrompt, voiceConfigJSON, talkativeness)
}
func (s *pgStore) DeleteDjProfile(djID int) error { return DeleteDjProfile(djID) }

func (s *pgStore) CreateScript(name string, description *string, scriptType, scriptContent string, createdBy int) (model.Script, error) {
	return CreateScript(name, description, scriptType, scriptContent, createdBy)
}
func (s *pgStore) ListScripts() ([]model.Script, error)          { return ListScripts() }
func (s *pgStore) GetScriptByID(scriptID int) (model.Script, error) { return GetScriptByID(scriptID) }
func (s *pgStore) UpdateScript(scriptID int, name, description, scriptType, scriptContent *string) error {
	return UpdateScript(scriptID, name, description, scriptType, scriptContent)
}
func (s *pgStore) DeleteScript(scriptID int) error { return DeleteScript(scriptID) }

func (s *pgStore) ListSettings() ([]model.GlobalSetting, error) { return ListSettings() }
func (s *pgStore) GetSettingValue(key string) (string, error)   { return GetSettingValue(key) }
func (s *pgStore) UpsertSetting(key, value string, description *string) (model.GlobalSetting, error) {
	return UpsertSetting(key, value, description)
}
