package v1

// SettingsRef is the settings summary embedded in every task entry.
type SettingsRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type TaskEntry struct {
	UUID       string      `json:"uuid"`
	Settings   SettingsRef `json:"settings"`
	User       string      `json:"user"`
	Status     int         `json:"status"`
	CreateTime string      `json:"create_time"`
}

type TaskListPayload struct {
	Count     int64       `json:"count"`
	PageCount int         `json:"page_count"`
	Entry     []TaskEntry `json:"entry"`
}

type TaskDetailPayload struct {
	TaskEntry
	Log      string `json:"log"`
	ExitCode *int   `json:"exit_code"`
}

type TaskCreateRequest struct {
	SettingsUUID string `json:"settings_uuid,required" vd:"len($)>0"`
}

type TaskListResponse struct {
	Response
	TaskListPayload `json:"payload"`
}

type TaskDetailResponse struct {
	Response
	TaskDetailPayload `json:"payload"`
}
