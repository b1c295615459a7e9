package v1

// ContainerConfig describes how a task's container is launched.
type ContainerConfig struct {
	Image       string   `json:"image"`
	Shell       string   `json:"shell,omitempty"`
	Commands    []string `json:"commands,omitempty"`
	MemoryLimit string   `json:"memory_limit,omitempty"`
	WorkingPath string   `json:"working_path,omitempty"`
}

// SettingsEntry is a task settings row. Container internals are admin-only
// and omitted for plain users.
type SettingsEntry struct {
	UUID            string           `json:"uuid"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	TimeLimit       int              `json:"time_limit"`
	CreateTime      string           `json:"create_time"`
	ContainerConfig *ContainerConfig `json:"container_config,omitempty"`
	Replica         *int             `json:"replica,omitempty"`
	TTLInterval     *int             `json:"ttl_interval,omitempty"`
	MaxSharingUsers *int             `json:"max_sharing_users,omitempty"`
}

type SettingsListPayload struct {
	Count     int64           `json:"count"`
	PageCount int             `json:"page_count"`
	Entry     []SettingsEntry `json:"entry"`
}

type SettingsCreateRequest struct {
	Name            string          `json:"name,required" vd:"len($)>0"`
	Description     string          `json:"description"`
	ContainerConfig ContainerConfig `json:"container_config"`
	TimeLimit       int             `json:"time_limit" vd:"$>0"`
	Replica         int             `json:"replica" vd:"$>0"`
	TTLInterval     int             `json:"ttl_interval"`
	MaxSharingUsers int             `json:"max_sharing_users"`
}

// SettingsUpdateRequest carries partial updates; nil fields keep the
// stored value.
type SettingsUpdateRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	ContainerConfig *ContainerConfig `json:"container_config"`
	TimeLimit       *int             `json:"time_limit"`
	Replica         *int             `json:"replica"`
	TTLInterval     *int             `json:"ttl_interval"`
	MaxSharingUsers *int             `json:"max_sharing_users"`
}

type SettingsListResponse struct {
	Response
	SettingsListPayload `json:"payload"`
}
