package models

import "time"

const (
	IssueStatusOpen   = "open"
	IssueStatusClosed = "closed"

	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"type:text;not null;index" json:"user_id"`
	ClientID    *uint      `json:"client_id,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Status      string     `gorm:"not null;default:active" json:"status"`
	DueOn       *time.Time `gorm:"type:date" json:"due_on,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `gorm:"index" json:"updated_at"`
}

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Upload struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:text;not null;index" json:"user_id"`
	ProjectID   *uint     `json:"project_id,omitempty"`
	FileName    string    `gorm:"not null" json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `gorm:"column:file_file_size;not null;default:0" json:"file_size"`
	StorageKey  string    `gorm:"not null" json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Task struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"type:text;not null;index" json:"user_id"`
	ProjectID *uint      `json:"project_id,omitempty"`
	Title     string     `gorm:"not null" json:"title"`
	Notes     string     `json:"notes"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	DueOn     *time.Time `gorm:"type:date" json:"due_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index" json:"user_id"`
	ClientID  *uint     `json:"client_id,omitempty"`
	Number    string    `gorm:"not null" json:"number"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Total     float64   `gorm:"not null;default:0" json:"total"`
	Paid      bool      `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Issue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:text;not null;index" json:"user_id"`
	ProjectID   *uint     `json:"project_id,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Status      string    `gorm:"not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (project *Project) SetOwner(userID string) { project.UserID = userID }
func (client *Client) SetOwner(userID string)   { client.UserID = userID }
func (upload *Upload) SetOwner(userID string)   { upload.UserID = userID }
func (task *Task) SetOwner(userID string)       { task.UserID = userID }
func (invoice *Invoice) SetOwner(userID string) { invoice.UserID = userID }
func (issue *Issue) SetOwner(userID string)     { issue.UserID = userID }

func (project *Project) SetID(id uint) { project.ID = id }
func (client *Client) SetID(id uint)   { client.ID = id }
func (upload *Upload) SetID(id uint)   { upload.ID = id }
func (task *Task) SetID(id uint)       { task.ID = id }
func (invoice *Invoice) SetID(id uint) { invoice.ID = id }
func (issue *Issue) SetID(id uint)     { issue.ID = id }

// KeepServerFields copies what clients may not edit from stored. A zero stored
// value, as on create, clears the timestamps so gorm fills them.
func (project *Project) KeepServerFields(stored Project) {
	project.CreatedAt, project.UpdatedAt = stored.CreatedAt, time.Time{}
}

func (client *Client) KeepServerFields(stored Client) {
	client.CreatedAt, client.UpdatedAt = stored.CreatedAt, time.Time{}
}

// Size and object key are fixed at creation, where the upload guards run.
func (upload *Upload) KeepServerFields(stored Upload) {
	upload.CreatedAt, upload.UpdatedAt = stored.CreatedAt, time.Time{}
	if stored.ID != 0 {
		upload.FileSize = stored.FileSize
		upload.StorageKey = stored.StorageKey
	}
}

func (task *Task) KeepServerFields(stored Task) {
	task.CreatedAt, task.UpdatedAt = stored.CreatedAt, time.Time{}
}

func (invoice *Invoice) KeepServerFields(stored Invoice) {
	invoice.CreatedAt, invoice.UpdatedAt = stored.CreatedAt, time.Time{}
}

func (issue *Issue) KeepServerFields(stored Issue) {
	issue.CreatedAt, issue.UpdatedAt = stored.CreatedAt, time.Time{}
}
