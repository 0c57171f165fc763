package models

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type AddDeviceRequest struct {
	Name       string `json:"name" binding:"required"`
	DeviceType string `json:"device_type"`
	Image      string `json:"image"`
	MQTTTopic  string `json:"mqtt_topic"`
	SpaceID    int64  `json:"space_id" binding:"required"`
	RoomID     *int64 `json:"room_id"`
}

type SetDeviceStateRequest struct {
	On *bool `json:"on" binding:"required"`
}

type ScenarioRequest struct {
	Name            string  `json:"name" binding:"required"`
	TimeOn          string  `json:"time_on"`
	TimeOff         string  `json:"time_off"`
	TimeOnPeriod    string  `json:"time_on_period"`
	TimeOffPeriod   string  `json:"time_off_period"`
	ScheduleType    string  `json:"schedule_type"`
	SelectedDates   []int   `json:"selected_dates"`
	SelectedMonth   *int    `json:"selected_month"`
	SelectedYear    *int    `json:"selected_year"`
	Active          *bool   `json:"active"`
	ScheduleEnabled *bool   `json:"schedule_enabled"`
	DeviceStatus    *bool   `json:"device_status"`
	Volume          *int    `json:"volume"`
	DeviceIDs       []int64 `json:"device_ids"`
	RoomIDs         []int64 `json:"room_ids"`
	SpaceID         *int64  `json:"space_id"`
	ImageURL        string  `json:"image_url"`
}

type TriggerScenarioRequest struct {
	On *bool `json:"on" binding:"required"`
}

type ControlRequest struct {
	Command string `json:"command" binding:"required"`
}

type AddSpaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddRoomRequest struct {
	Name string `json:"name" binding:"required"`
}
