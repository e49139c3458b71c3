package models

import (
	"time"

	"gorm.io/datatypes"
)

// Credential is one login record in the legacy `auth` table. Password holds a
// bcrypt hash; rows seeded with plaintext are upgraded on first login.
type Credential struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"uniqueIndex;size:32;not null" json:"user_id"` // "<letter>-<profile id>"
	Password  string `gorm:"size:255;not null" json:"-"`
	Role      Role   `gorm:"size:16;not null" json:"role"`
	ProfileID uint   `gorm:"index;not null" json:"profile_id"`
}

func (Credential) TableName() string { return "auth" }

// Tenant profile. Stat is the maintenance payment status ("Payé" once paid).
type Tenant struct {
	TenantID  uint    `gorm:"primaryKey;column:tenant_id" json:"tenant_id"`
	Name      string  `gorm:"size:255" json:"name"`
	DOB       string  `gorm:"column:dob;size:32" json:"dob"`
	Stat      string  `gorm:"size:64" json:"stat"`
	LeaveDate *string `gorm:"column:leave_date;size:32" json:"leaveDate"`
	RoomNo    int     `gorm:"column:room_no;index" json:"room_no"`
	Age       int     `json:"age"`
	OwnerNo   uint    `gorm:"column:ownerno" json:"ownerno"`

	Email             *string `gorm:"size:255" json:"email,omitempty"`
	EmailVerified     bool    `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken *string `gorm:"size:64" json:"-"`
}

func (Tenant) TableName() string { return "tenant" }

type Owner struct {
	OwnerID         uint   `gorm:"primaryKey;column:owner_id" json:"owner_id"`
	Name            string `gorm:"size:255" json:"name"`
	Age             int    `json:"age"`
	AggrementStatus string `gorm:"column:aggrement_status;size:64" json:"aggrement_status"`
	RoomNo          int    `gorm:"column:room_no;index" json:"room_no"`
	DOB             string `gorm:"column:dob;size:32" json:"dob"`

	Email             *string `gorm:"size:255" json:"email,omitempty"`
	EmailVerified     bool    `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken *string `gorm:"size:64" json:"-"`
}

func (Owner) TableName() string { return "owner" }

type Employee struct {
	EmpID   uint     `gorm:"primaryKey;column:emp_id" json:"emp_id"`
	Name    string   `gorm:"size:255" json:"name"`
	Age     *int     `json:"age,omitempty"`
	Salary  *float64 `json:"salary,omitempty"`
	BlockNo *int     `gorm:"column:block_no" json:"block_no,omitempty"`

	Email             *string `gorm:"size:255" json:"email,omitempty"`
	EmailVerified     bool    `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken *string `gorm:"size:64" json:"-"`
}

func (Employee) TableName() string { return "employee" }

type BlockAdmin struct {
	AdminID   uint   `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	AdminName string `gorm:"column:admin_name;size:255" json:"admin_name"`
	BlockNo   int    `gorm:"column:block_no" json:"block_no"`

	Email             *string `gorm:"size:255" json:"email,omitempty"`
	Phone             *string `gorm:"size:32" json:"phone,omitempty"`
	EmailVerified     bool    `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken *string `gorm:"size:64" json:"-"`
}

func (BlockAdmin) TableName() string { return "block_admin" }

// Block keys a (block, room) pair and carries at most one open complaint.
type Block struct {
	BlockNo    int     `gorm:"primaryKey;column:block_no;autoIncrement:false" json:"block_no"`
	RoomNo     int     `gorm:"primaryKey;column:room_no;autoIncrement:false" json:"room_no"`
	BlockName  string  `gorm:"size:255" json:"block_name"`
	Complaints *string `gorm:"type:text" json:"complaints"`
	Resolved   bool    `gorm:"not null;default:false" json:"resolved"`
}

func (Block) TableName() string { return "block" }

type Room struct {
	RoomNo      int  `gorm:"primaryKey;column:room_no;autoIncrement:false" json:"room_no"`
	ParkingSlot *int `gorm:"column:parking_slot" json:"parking_slot"`
}

func (Room) TableName() string { return "room" }

type ParkingSlot struct {
	SlotNumber int `gorm:"primaryKey;column:slot_number;autoIncrement:false" json:"slot_number"`
}

func (ParkingSlot) TableName() string { return "parking_slots" }

// Identity is the proof-of-identity record written at account creation.
type Identity struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	IDNumber *string `gorm:"column:id_number;size:64" json:"id_number"`
	OwnerID  *uint   `gorm:"column:owner_id;index" json:"owner_id,omitempty"`
	TenantID *uint   `gorm:"column:tenant_id;index" json:"tenant_id,omitempty"`
	EmpID    *uint   `gorm:"column:emp_id;index" json:"emp_id,omitempty"`
}

func (Identity) TableName() string { return "identity" }

// Rental links a tenant to a rental record; rows cascade on tenant deletion.
type Rental struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	TenantID uint       `gorm:"column:tenant_id;index" json:"tenant_id"`
	RoomNo   int        `gorm:"column:room_no" json:"room_no"`
	Since    *time.Time `json:"since,omitempty"`
}

func (Rental) TableName() string { return "rental" }

const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusResolved   = "resolved"
)

type MaintenanceRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;index" json:"user_id"` // credential surrogate id
	UserType    Role      `gorm:"column:user_type;size:16" json:"user_type"`
	RoomNo      int       `gorm:"column:room_no" json:"room_no"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:16;not null;default:pending" json:"status"`
	SubmittedAt time.Time `gorm:"column:submitted_at" json:"submitted_at"`
}

func (MaintenanceRequest) TableName() string { return "maintenance_requests" }

// Activity is an append-only log row, written on login and on payment.
type Activity struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"column:user_id;index" json:"user_id"`
	Action string    `gorm:"size:255" json:"action"`
	Date   time.Time `json:"date"`
}

func (Activity) TableName() string { return "activities" }

type Notification struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"column:user_id;index" json:"user_id"`
	Message string    `gorm:"type:text" json:"message"`
	Date    time.Time `json:"date"`
}

func (Notification) TableName() string { return "notifications" }

type SystemAlert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text" json:"message"`
	Resolved  bool      `gorm:"not null;default:false" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

func (SystemAlert) TableName() string { return "system_alerts" }

type StatsHistory struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	Month          string `gorm:"size:16;uniqueIndex" json:"month"`
	TotalOwners    int    `gorm:"column:total_owners" json:"total_owners"`
	TotalTenants   int    `gorm:"column:total_tenants" json:"total_tenants"`
	TotalEmployees int    `gorm:"column:total_employees" json:"total_employees"`
}

func (StatsHistory) TableName() string { return "stats_history" }

const (
	MailStatusPending   = "pending"
	MailStatusPublished = "published"
	MailStatusFailed    = "failed"
)

// EmailMessage is one outbox row. Rows are written inside the transaction
// that caused the e-mail and dispatched by the mail worker.
type EmailMessage struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Recipient   string         `gorm:"size:255;not null" json:"recipient"`
	Subject     string         `gorm:"size:255" json:"subject"`
	Body        string         `gorm:"type:text" json:"body"`
	Payload     datatypes.JSON `json:"payload,omitempty"` // context of the send (user id, role, token)
	Status      string         `gorm:"size:16;not null;default:pending;index" json:"status"`
	Attempts    int            `gorm:"not null;default:0" json:"attempts"`
	LastError   *string        `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

func (EmailMessage) TableName() string { return "email_messages" }
