package models

type AccountRole string

const (
	RoleAdmin AccountRole = "admin"
	RoleUser  AccountRole = "user"
)

type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusBanned AccountStatus = "banned"
)

type Account struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"displayName"`
	Role        AccountRole   `json:"role"`
	Status      AccountStatus `json:"status"`
	Avatar      string        `json:"avatar,omitempty"`
	CreatedAt   int64         `json:"createdAt"`
}

func (a Account) RecordID() string {
	return a.ID
}
