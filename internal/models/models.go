package models

import "time"

type Student struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Dept     string `db:"dept" json:"dept"`
	Email    string `db:"email" json:"email"`
	Year     string `db:"year" json:"year"`
	Password string `db:"password" json:"-"`
}

// PendingFee is one imported spreadsheet row awaiting billing. ImportedBy and
// CreatedAt are server-side bookkeeping and never leave the API.
type PendingFee struct {
	ID          int64   `db:"id" json:"id"`
	StudentName string  `db:"student_name" json:"student_name"`
	Department  string  `db:"department" json:"department"`
	FeeType     string  `db:"fee_type" json:"fee_type"`
	Amount      float64 `db:"amount" json:"amount"`
	DueDate     string  `db:"due_date" json:"due_date"`
	ImportedBy  string  `db:"imported_by" json:"-"`
	CreatedAt   string  `db:"created_at" json:"-"`
}

// UserProfile is the single shared profile row for a role.
type UserProfile struct {
	Role      string  `db:"role"`
	Picture   *string `db:"profile_picture"`
	Name      *string `db:"profile_name"`
	UpdatedAt *string `db:"updated_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	HeapUsedBytes     int64     `db:"heap_used_bytes"`
	HeapMaxBytes      int64     `db:"heap_max_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
