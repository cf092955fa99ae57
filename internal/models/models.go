// Package models defines the gorm-mapped records of the inspection backend.
package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Name        string    `gorm:"size:255" json:"name"`
	IsActive    bool      `gorm:"not null" json:"-"`
	IsStaff     bool      `gorm:"not null" json:"-"`
	IsSuperuser bool      `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Client struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"size:200;not null"`
	Location  string `gorm:"size:200;not null"`
	Logo      string `gorm:"size:200;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Report is a single valve inspection. All inspection fields are free text.
type Report struct {
	ID     uint `gorm:"primarykey"`
	UserID uint `gorm:"not null;index"`

	JobID            string `gorm:"column:job_id;size:200;not null"`
	Clients          string `gorm:"column:clients;size:200;not null"`
	ClientLogo       string `gorm:"column:client_logo;size:200;not null"`
	Location         string `gorm:"column:location;size:200;not null"`
	Year             string `gorm:"column:year;size:200;not null"`
	Month            string `gorm:"column:month;size:200;not null"`
	Initial          string `gorm:"column:initial;size:200;not null"`
	PoNum            string `gorm:"column:po_num;size:200;not null"`
	Hub              string `gorm:"column:hub;size:200;not null"`
	PlatformLocation string `gorm:"column:platform_location;size:200;not null"`
	SurveyDate       string `gorm:"column:survey_date;size:200;not null"`
	InspectionBy     string `gorm:"column:inspection_by;size:200;not null"`

	// valve specification & information
	ValveTagNo       string `gorm:"column:valve_tag_no;size:200;not null"`
	ValveDescription string `gorm:"column:valve_description;size:200;not null"`
	ValveType        string `gorm:"column:valve_type;size:200;not null"`
	Functions        string `gorm:"column:functions;size:200;not null"`
	ValveSize        string `gorm:"column:valve_size;size:200;not null"`
	ValveMake        string `gorm:"column:valve_make;size:200;not null"`
	ActuatorMake     string `gorm:"column:actuator_make;size:200;not null"`
	ValvePhoto       string `gorm:"column:valve_photo;size:200;not null"`
	PAndIDNo         string `gorm:"column:p_and_id_no;size:200;not null"`
	MalSof           string `gorm:"column:mal_sof;size:200;not null"`
	MalSofOthers     string `gorm:"column:mal_sof_others;size:200;not null"`
	Mal              string `gorm:"column:mal;size:200;not null"`
	MalWarn          string `gorm:"column:mal_warn;size:200;not null"`

	// AE test condition
	FluidType          string `gorm:"column:fluid_type;size:200;not null"`
	PresureUpstream    string `gorm:"column:presure_upstream;size:200;not null"`
	PressureDownstream string `gorm:"column:pressure_downstream;size:200;not null"`
	FlowDirection      string `gorm:"column:flow_direction;size:200;not null"`

	// result & discussion
	U3                string `gorm:"column:u3;size:200;not null"`
	U2                string `gorm:"column:u2;size:200;not null"`
	U1                string `gorm:"column:u1;size:200;not null"`
	Va                string `gorm:"column:va;size:200;not null"`
	Vb                string `gorm:"column:vb;size:200;not null"`
	Vc                string `gorm:"column:vc;size:200;not null"`
	Vd                string `gorm:"column:vd;size:200;not null"`
	D1                string `gorm:"column:d1;size:200;not null"`
	D2                string `gorm:"column:d2;size:200;not null"`
	D3                string `gorm:"column:d3;size:200;not null"`
	Result            string `gorm:"column:result;size:200;not null"`
	EstimatedLeakRate string `gorm:"column:estimated_leak_rate;size:200;not null"`
	ColorCode         string `gorm:"column:color_code;size:200;not null"`
	ReasonNotTested   string `gorm:"column:reason_not_tested;size:200;not null"`
	DiscussionResult  string `gorm:"column:discussion_result;size:200;not null"`
	RecommendedAction string `gorm:"column:recommended_action;size:200;not null"`
	MaintenanceHis    string `gorm:"column:maintenance_his;size:200;not null"`

	// valve external condition assessment
	AvailNameplateTagNo     string `gorm:"column:avail_nameplate_tagno;size:200;not null"`
	PresenceDownstream      string `gorm:"column:presence_downstream;size:200;not null"`
	LeakVisibilityBody      string `gorm:"column:leak_visibility_body;size:200;not null"`
	SevereCorrosionFlanges  string `gorm:"column:severe_corrosion_flanges;size:200;not null"`
	VisibilityCrackNutsBolt string `gorm:"column:visibility_crack_nuts_bolt;size:200;not null"`

	// Image is the blob storage key of the attached picture, empty when none.
	Image string `gorm:"size:255;not null;default:''"`
	Jobs  []Job  `gorm:"many2many:report_jobs;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Job struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"size:200;not null"`
	CreatedAt time.Time
}

func (c *Client) SetOwner(userID uint) { c.UserID = userID }
func (r *Report) SetOwner(userID uint) { r.UserID = userID }
func (j *Job) SetOwner(userID uint)    { j.UserID = userID }
