package domain

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type DataSource string

const (
	SourceAdminInput DataSource = "admin_input"
	SourceUserInput  DataSource = "user_input"
	SourceCrawling   DataSource = "crawling"
	SourceUserSubmit DataSource = "user_submit"
)

// ValidShopTypes is the closed set of shop categories.
var ValidShopTypes = []string{"gacha", "figure", "claw"}

// Korea bounding box and machine-count limits used by shop validation.
const (
	MinLatitude  = 33.0
	MaxLatitude  = 43.0
	MinLongitude = 124.0
	MaxLongitude = 132.0

	MaxGachaMachineCount = 1000
	MaxShopNameLength    = 100
)

type Shop struct {
	ID                string             `json:"id" gorm:"primaryKey;size:36"`
	Name              string             `json:"name"`
	ShopType          []string           `json:"shop_type" gorm:"serializer:json"`
	Description       string             `json:"description,omitempty"`
	Phone             string             `json:"phone,omitempty"`
	Latitude          *float64           `json:"latitude,omitempty"`
	Longitude         *float64           `json:"longitude,omitempty"`
	BusinessHours     map[string]any     `json:"business_hours,omitempty" gorm:"serializer:json"`
	Is24Hours         *bool              `json:"is_24_hours,omitempty"`
	GachaMachineCount *int               `json:"gacha_machine_count,omitempty"`
	MainSeries        []string           `json:"main_series,omitempty" gorm:"serializer:json"`
	Sido              string             `json:"sido"`
	Sigungu           string             `json:"sigungu,omitempty"`
	JibunAddress      string             `json:"jibun_address,omitempty"`
	RoadAddress       string             `json:"road_address"`
	DetailAddress     string             `json:"detail_address,omitempty"`
	ZoneCode          string             `json:"zone_code,omitempty"`
	BuildingName      string             `json:"building_name,omitempty"`
	SocialURLs        map[string]string  `json:"social_urls,omitempty" gorm:"serializer:json"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	DataSource        DataSource         `json:"data_source"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`
	SubmissionNote    string             `json:"submission_note,omitempty"`
	VerifiedAt        *time.Time         `json:"verified_at,omitempty"`
	VerifiedBy        *string            `json:"verified_by,omitempty" gorm:"size:36"`
	IsDeleted         bool               `json:"-"`
	DeletedAt         *time.Time         `json:"-"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	CreatedBy         *string            `json:"created_by,omitempty" gorm:"size:36"`
	UpdatedBy         *string            `json:"updated_by,omitempty" gorm:"size:36"`

	// hydrated from shop_tags on single-shop reads
	Tags []Tag `json:"tags,omitempty" gorm:"-"`
}

// ShopOwner links an owner-role account to a shop. Only verified links
// grant edit rights.
type ShopOwner struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	ShopID          string     `json:"shop_id" gorm:"index;size:36"`
	OwnerID         string     `json:"owner_id" gorm:"index;size:36"`
	Phone           string     `json:"phone,omitempty"`
	BusinessName    string     `json:"business_name,omitempty"`
	BusinessLicense string     `json:"business_license,omitempty"`
	Verified        bool       `json:"verified"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ShopTag is the shop/tag join row.
type ShopTag struct {
	ShopID    string    `json:"shop_id" gorm:"primaryKey;size:36"`
	TagID     string    `json:"tag_id" gorm:"primaryKey;size:36"`
	CreatedBy *string   `json:"created_by,omitempty" gorm:"size:36"`
	CreatedAt time.Time `json:"created_at"`
}
