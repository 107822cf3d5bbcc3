package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Account statuses shared by candidates and companies.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// Job posting statuses. Jobs are created active and can only be toggled
// between active and closed.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Principal kinds as reported in sessions and token claims.
const (
	UserTypeCandidate = "candidate"
	UserTypeCompany   = "company"
	UserTypeAdmin     = "admin"
)

// Admin notification types.
const (
	NotificationNewCandidate        = "new_candidate"
	NotificationVerificationRequest = "verification_request"
)

type Candidate struct {
	ID           int64        `json:"id" db:"id"`
	FirstName    string       `json:"first_name" db:"first_name" validate:"required"`
	LastName     string       `json:"last_name" db:"last_name" validate:"required"`
	Email        string       `json:"email" db:"email" validate:"required,email"`
	PasswordHash string       `json:"-" db:"password_hash"`
	Phone        string       `json:"phone,omitempty" db:"phone"`
	Location     string       `json:"location,omitempty" db:"location"`
	Bio          string       `json:"bio,omitempty" db:"bio"`
	Skills       []string     `json:"skills" db:"skills"`
	Education    []Education  `json:"education" db:"education"`
	Experience   []Experience `json:"experience" db:"experience"`
	Avatar       string       `json:"avatar,omitempty" db:"avatar"`
	Resume       string       `json:"resume,omitempty" db:"resume"`
	AdminCV      string       `json:"admin_cv,omitempty" db:"admin_cv"`
	Status       string       `json:"status" db:"status"`
	Created      int64        `json:"created" db:"created"`
	Updated      int64        `json:"updated" db:"updated"`
}

type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Company struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"company_name" db:"company_name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Location     string `json:"location,omitempty" db:"location"`
	Website      string `json:"website,omitempty" db:"website"`
	Description  string `json:"description,omitempty" db:"description"`
	Industry     string `json:"industry" db:"industry"`
	CompanySize  string `json:"company_size,omitempty" db:"company_size"`
	FoundedYear  string `json:"founded_year,omitempty" db:"founded_year"`
	Logo         string `json:"logo,omitempty" db:"logo"`
	Verified     bool   `json:"verified" db:"verified"`
	Status       string `json:"status" db:"status"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Job struct {
	ID         int64    `json:"id" db:"id"`
	CompanyID  int64    `json:"company_id" db:"company_id"`
	Title      string   `json:"job_title" db:"job_title" validate:"required"`
	Salary     string   `json:"salary" db:"salary"`
	Profile    string   `json:"looking_for_profile" db:"looking_for_profile"`
	Experience string   `json:"required_experience" db:"required_experience"`
	Skills     []string `json:"required_skills" db:"required_skills"`
	Status     string   `json:"status" db:"status"`
	Created    int64    `json:"created" db:"created"`
	Updated    int64    `json:"updated" db:"updated"`
}

// Notification is an admin inbox entry produced by workflow transitions.
// SubjectID and SubjectName point at the candidate or company the entry is
// about; entries are deleted when the corresponding admin action resolves
// them.
type Notification struct {
	ID          int64  `json:"id" db:"id"`
	Text        string `json:"text" db:"text"`
	Time        int64  `json:"time" db:"time"`
	Unread      bool   `json:"unread" db:"unread"`
	Type        string `json:"type" db:"type"`
	SubjectID   int64  `json:"subject_id" db:"subject_id"`
	SubjectName string `json:"subject_name" db:"subject_name"`
}

// RevocationRecord marks a token as revoked. Exp is the token's own expiry
// (unix seconds, straight from the claim); RevokedAt is the insertion time in
// unix milliseconds. Records are immutable and safe to delete once Exp has
// passed.
type RevocationRecord struct {
	JTI       string `json:"jti" db:"jti"`
	Exp       int64  `json:"exp" db:"exp"`
	RevokedAt int64  `json:"revoked_at" db:"revoked_at"`
	UserID    int64  `json:"user_id" db:"user_id"`
	UserType  string `json:"user_type" db:"user_type"`
}
